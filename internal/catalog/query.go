package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// Сообщения для пользователя при ошибках загрузки.
const (
	MessageProductsFailed   = "Failed to fetch products. Please try again."
	MessageProductNotFound  = "Product not found."
	MessageCategoriesFailed = "Failed to fetch categories."
)

// Status — состояние слота запроса.
type Status int

const (
	StatusLoading Status = iota
	StatusFailed
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Result — снимок слота: ровно одно из «загрузка», «ошибка с сообщением», «данные».
type Result[T any] struct {
	Status  Status
	Data    T
	Message string
	Err     error
}

// FetchFunc загружает данные для слота.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Query хранит состояние одного запроса к каталогу. Каждый Load начинает новое поколение
// и отменяет предыдущую загрузку; записать результат может только последнее поколение.
type Query[T any] struct {
	fetch     FetchFunc[T]
	messageOf func(error) string

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	result     Result[T]
}

// NewQuery создаёт слот в состоянии загрузки. messageOf переводит ошибку в текст для пользователя.
func NewQuery[T any](fetch FetchFunc[T], messageOf func(error) string) *Query[T] {
	if messageOf == nil {
		messageOf = func(error) string { return MessageProductsFailed }
	}
	return &Query[T]{
		fetch:     fetch,
		messageOf: messageOf,
		result:    Result[T]{Status: StatusLoading},
	}
}

// Load выполняет загрузку и возвращает её результат. Если за время загрузки был вызван
// новый Load, результат в слот не записывается и возвращается текущее состояние слота.
func (q *Query[T]) Load(ctx context.Context) Result[T] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	q.mu.Lock()
	if q.cancel != nil {
		q.cancel()
	}
	q.generation++
	generation := q.generation
	q.cancel = cancel
	q.result = Result[T]{Status: StatusLoading}
	q.mu.Unlock()

	data, err := q.fetch(ctx)

	next := Result[T]{Status: StatusReady, Data: data}
	if err != nil {
		next = Result[T]{Status: StatusFailed, Message: q.messageOf(err), Err: err}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if generation != q.generation {
		return q.result
	}
	q.cancel = nil
	q.result = next
	return next
}

// Result возвращает текущее состояние слота.
func (q *Query[T]) Result() Result[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

// ProductsQuery загружает список товаров; пустая категория означает весь каталог.
func ProductsQuery(catalog domain.Catalog, category string) *Query[[]domain.Product] {
	return NewQuery(func(ctx context.Context) ([]domain.Product, error) {
		if category == "" {
			return catalog.Products(ctx)
		}
		return catalog.ProductsByCategory(ctx, category)
	}, func(error) string { return MessageProductsFailed })
}

// ProductQuery загружает один товар по id.
func ProductQuery(catalog domain.Catalog, id int) *Query[domain.Product] {
	return NewQuery(func(ctx context.Context) (domain.Product, error) {
		return catalog.Product(ctx, id)
	}, func(error) string { return MessageProductNotFound })
}

// CategoriesQuery загружает список категорий.
func CategoriesQuery(catalog domain.Catalog) *Query[[]string] {
	return NewQuery(catalog.Categories, func(error) string { return MessageCategoriesFailed })
}

// MessageFor возвращает текст для пользователя по ошибке каталога.
func MessageFor(err error) string {
	if errors.Is(err, domain.ErrProductNotFound) {
		return MessageProductNotFound
	}
	return MessageProductsFailed
}
