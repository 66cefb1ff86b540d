package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shopcart/internal/pricing"
	"github.com/vladislavdragonenkov/shopcart/internal/service/cart"
	"github.com/vladislavdragonenkov/shopcart/internal/service/session"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/file"
)

const envPrefix = "SHOPCART"

// cliConfig описывает настройки shopctl: флаги, переменные SHOPCART_* и необязательный YAML-файл.
type cliConfig struct {
	DataDir        string        `mapstructure:"data_dir"`
	Profile        string        `mapstructure:"profile"`
	CatalogURL     string        `mapstructure:"catalog_url"`
	CatalogTimeout time.Duration `mapstructure:"catalog_timeout"`
	KafkaBrokers   string        `mapstructure:"kafka_brokers"`
	KafkaTopic     string        `mapstructure:"kafka_topic"`
	LogLevel       string        `mapstructure:"log_level"`
}

// environment лениво собирает зависимости команд из cliConfig.
type environment struct {
	v      *viper.Viper
	out    io.Writer
	cfg    cliConfig
	logger *log.Entry

	kv        domain.KeyValueStore
	catalog   domain.Catalog
	formatter *pricing.Formatter
}

func newRootCmd(out io.Writer) *cobra.Command {
	env := &environment{v: viper.New(), out: out, formatter: pricing.DefaultFormatter()}

	root := &cobra.Command{
		Use:   "shopctl",
		Short: "Terminal storefront: browse the catalog, manage the cart, check out",
		Long: `shopctl drives the storefront core from a terminal. The cart and the
signed-in user are persisted per profile under the data directory, so
separate profiles behave like separate browsers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.load()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml)")
	flags.String("data-dir", defaultDataDir(), "directory for persisted cart and session")
	flags.String("profile", domain.DefaultProfile, "storage profile; each profile has its own cart and session")
	flags.String("catalog-url", catalog.DefaultBaseURL, "catalog API base URL")
	flags.Duration("catalog-timeout", catalog.DefaultTimeout, "catalog request timeout")
	flags.String("kafka-brokers", "", "comma-separated Kafka brokers for order events")
	flags.String("kafka-topic", kafka.TopicOrderEvents, "Kafka topic for order events")
	flags.String("log-level", "warn", "log level")

	for _, name := range []string{"data-dir", "profile", "catalog-url", "catalog-timeout", "kafka-brokers", "kafka-topic", "log-level"} {
		_ = env.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
	_ = env.v.BindPFlag("config", flags.Lookup("config"))

	root.AddCommand(
		newProductsCmd(env),
		newCategoriesCmd(env),
		newCartCmd(env),
		newLoginCmd(env),
		newRegisterCmd(env),
		newLogoutCmd(env),
		newWhoamiCmd(env),
		newCheckoutCmd(env),
		newOrdersCmd(env),
		newVersionCmd(env),
	)
	return root
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "shopcart")
	}
	return ".shopcart"
}

// load читает конфигурацию и открывает файловое хранилище.
func (e *environment) load() error {
	e.v.SetEnvPrefix(envPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()

	if path := e.v.GetString("config"); path != "" {
		e.v.SetConfigFile(path)
		if err := e.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := e.v.Unmarshal(&e.cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(e.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", e.cfg.LogLevel, err)
	}
	logger.SetLevel(level)
	e.logger = logger.WithField("component", "shopctl")

	if e.kv == nil {
		kv, err := file.NewKeyValueStore(e.cfg.DataDir)
		if err != nil {
			return err
		}
		e.kv = kv
	}
	return nil
}

func (e *environment) catalogClient() (domain.Catalog, error) {
	if e.catalog != nil {
		return e.catalog, nil
	}
	client, err := catalog.NewClient(e.cfg.CatalogURL,
		catalog.WithTimeout(e.cfg.CatalogTimeout),
		catalog.WithLogger(e.logger.WithField("layer", "catalog")),
	)
	if err != nil {
		return nil, err
	}
	e.catalog = client
	return client, nil
}

func (e *environment) cart() *cart.Store {
	return cart.Open(e.kv, cart.WithProfile(e.cfg.Profile), cart.WithLogger(e.logger.WithField("layer", "cart")))
}

func (e *environment) session() *session.Store {
	return session.Open(e.kv, session.WithProfile(e.cfg.Profile), session.WithLogger(e.logger.WithField("layer", "session")))
}

func (e *environment) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e.out, format, args...)
}

// printValidation выводит сообщения по полям; прочие ошибки возвращает как есть.
func (e *environment) printValidation(err error) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, field := range verr.FieldNames() {
		e.printf("  %s: %s\n", field, verr.Fields[field])
	}
	return domain.ErrValidation
}
