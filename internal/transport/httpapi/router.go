package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/pricing"
	"github.com/vladislavdragonenkov/shopcart/internal/service/cart"
	"github.com/vladislavdragonenkov/shopcart/internal/service/checkout"
	"github.com/vladislavdragonenkov/shopcart/internal/service/session"
)

// DefaultRequestTimeout ограничивает обработку одного запроса.
const DefaultRequestTimeout = 15 * time.Second

// Config содержит зависимости HTTP API.
type Config struct {
	Catalog        domain.Catalog
	Carts          *cart.Registry
	Sessions       *session.Registry
	Checkout       *checkout.Service
	Formatter      *pricing.Formatter
	Locale         language.Tag
	RequestTimeout time.Duration
	Logger         *log.Entry
}

type server struct {
	catalog   domain.Catalog
	carts     *cart.Registry
	sessions  *session.Registry
	checkout  *checkout.Service
	formatter *pricing.Formatter
	locale    language.Tag
	logger    *log.Entry
}

// NewRouter собирает chi-роутер витрины с маршрутами /api/v1.
func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = log.WithField("component", "http-api")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = pricing.DefaultFormatter()
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.English
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	s := &server{
		catalog:   cfg.Catalog,
		carts:     cfg.Carts,
		sessions:  cfg.Sessions,
		checkout:  cfg.Checkout,
		formatter: cfg.Formatter,
		locale:    cfg.Locale,
		logger:    cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/home", s.home)
		r.Get("/categories", s.categories)
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.products)
			r.Get("/{id}", s.product)
		})

		r.Group(func(r chi.Router) {
			r.Use(profileMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", s.getCart)
				r.Delete("/", s.clearCart)
				r.Post("/items", s.addItem)
				r.Put("/items/{id}", s.updateItem)
				r.Delete("/items/{id}", s.removeItem)
			})
			r.Route("/session", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.logout)
				r.Post("/login", s.login)
				r.Post("/register", s.register)
			})
			r.Route("/checkout", func(r chi.Router) {
				r.Post("/quote", s.quote)
				r.Post("/orders", s.placeOrder)
			})
		})
	})

	return r
}
