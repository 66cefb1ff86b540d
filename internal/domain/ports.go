package domain

import "context"

// KeyValueStore — долговременное хранилище «ключ → JSON», аналог локального хранилища браузера.
type KeyValueStore interface {
	// Get возвращает значение или ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Put перезаписывает значение целиком.
	Put(key string, value []byte) error
	// Delete удаляет ключ; отсутствие ключа ошибкой не считается.
	Delete(key string) error
}

// Pinger реализуют хранилища, доступность которых можно проверить.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Catalog — контракт удалённого каталога товаров.
type Catalog interface {
	Products(ctx context.Context) ([]Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
	Product(ctx context.Context, id int) (Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderPublisher публикует событие об оформленном заказе.
type OrderPublisher interface {
	PublishOrderPlaced(order PlacedOrder) error
}
