package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
	"github.com/vladislavdragonenkov/shopcart/internal/version"
)

const (
	// DefaultBaseURL указывает на публичный демонстрационный каталог.
	DefaultBaseURL = "https://fakestoreapi.com"
	// DefaultTimeout ограничивает один запрос к каталогу.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 8 << 20
)

var (
	errEmptyBody = errors.New("empty response body")
	errNotFound  = errors.New("not found")
)

// Client ходит в каталог по HTTP. Одинаковые одновременные GET схлопываются в один запрос.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Entry
	metrics    *metrics.StorefrontMetrics
	group      singleflight.Group
}

var _ domain.Catalog = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет HTTP-клиент (например, для тестов).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout задаёт таймаут запроса.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			clone := *c.httpClient
			clone.Timeout = timeout
			c.httpClient = &clone
		}
	}
}

// WithLogger задаёт логгер клиента.
func WithLogger(logger *log.Entry) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics подключает метрики запросов.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient создаёт клиента каталога для baseURL; пустая строка означает DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("catalog base url must be http(s), got %q", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("catalog base url has no host: %q", baseURL)
	}

	c := &Client{
		baseURL:    parsed.String(),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.WithField("component", "catalog-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Products возвращает все товары.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getList(ctx, "products", "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsByCategory возвращает товары одной категории.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.getList(ctx, "products_by_category", path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product возвращает товар по id или domain.ErrProductNotFound.
// Каталог отвечает 200 с пустым телом на неизвестный id, это тоже «не найден».
func (c *Client) Product(ctx context.Context, id int) (domain.Product, error) {
	var product domain.Product
	err := c.getJSON(ctx, "product", "/products/"+strconv.Itoa(id), &product)
	switch {
	case errors.Is(err, errNotFound), errors.Is(err, errEmptyBody):
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	case err != nil:
		return domain.Product{}, err
	case product.IsZero():
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return product, nil
}

// Categories возвращает список категорий.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getList(ctx, "categories", "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Ping проверяет доступность каталога.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Categories(ctx)
	return err
}

func (c *Client) getList(ctx context.Context, endpoint, path string, target any) error {
	err := c.getJSON(ctx, endpoint, path, target)
	if errors.Is(err, errNotFound) || errors.Is(err, errEmptyBody) {
		return fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	return err
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, target any) error {
	start := time.Now()
	err := c.decode(ctx, path, target)
	c.metrics.RecordCatalogRequest(endpoint, err, time.Since(start))

	if err != nil && !errors.Is(err, errNotFound) && !errors.Is(err, errEmptyBody) {
		c.logger.WithError(err).WithField("path", path).Warn("catalog request failed")
	}
	return err
}

func (c *Client) decode(ctx context.Context, path string, target any) error {
	body, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return errEmptyBody
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	return nil
}

// fetch выполняет GET; одновременные вызовы с одним путём разделяют ответ.
// Общий запрос не отменяется отменой одного из ожидающих, его ограничивает таймаут клиента.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	ch := c.group.DoChan(path, func() (any, error) {
		return c.do(context.WithoutCancel(ctx), path)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrCatalogUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrCatalogUnavailable, path, resp.StatusCode)
	}
	return body, nil
}
