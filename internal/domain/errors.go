package domain

import "errors"

var (
	// ErrKeyNotFound возвращается хранилищем, если ключ отсутствует.
	ErrKeyNotFound = errors.New("key not found")
	// ErrProductNotFound возвращается каталогом, если товара с таким id нет.
	ErrProductNotFound = errors.New("product not found")
	// ErrCatalogUnavailable — транспортная ошибка или некорректный ответ каталога.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrUnknownCartAction сигнализирует о действии вне закрытого набора CartAction.
	ErrUnknownCartAction = errors.New("unknown cart action")
	// ErrUnknownSortKey возвращается при разборе неизвестного ключа сортировки.
	ErrUnknownSortKey = errors.New("unknown sort key")
	// ErrUnknownShippingMethod возвращается при разборе неизвестного способа доставки.
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	// ErrCartEmpty — оформление заказа с пустой корзиной.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCheckoutIncomplete — попытка оформить заказ, не пройдя все шаги.
	ErrCheckoutIncomplete = errors.New("checkout is incomplete")
	// ErrOrderPublish — ошибка публикации события о заказе.
	ErrOrderPublish = errors.New("order event publish failed")
)

// IsNotFound проверяет, относится ли ошибка к отсутствующим данным.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrProductNotFound)
}
