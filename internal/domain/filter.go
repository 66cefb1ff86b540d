package domain

import (
	"fmt"
	"strings"
)

// DefaultMaxPrice задаёт верхнюю границу ценового фильтра по умолчанию.
var DefaultMaxPrice = MustMoney("1000")

// FilterSpec — критерии отбора товаров. Не сохраняется между сессиями.
type FilterSpec struct {
	// Category сравнивается точно; пустая строка означает «без фильтра».
	Category string
	// SearchText ищется без учёта регистра в title и category.
	SearchText string
	MinPrice   Money
	MaxPrice   Money
}

// DefaultFilter возвращает фильтр без ограничений с ценовым диапазоном [0, 1000].
func DefaultFilter() FilterSpec {
	return FilterSpec{MinPrice: Zero, MaxPrice: DefaultMaxPrice}
}

// IsActive сообщает, сужает ли фильтр выдачу относительно DefaultFilter.
func (f FilterSpec) IsActive() bool {
	return f.Category != "" || f.SearchText != "" ||
		f.MinPrice.Cmp(Zero) > 0 || f.MaxPrice.Cmp(DefaultMaxPrice) < 0
}

// SortKey задаёт порядок выдачи.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
)

// SortKeys перечисляет допустимые ключи в порядке отображения.
var SortKeys = []SortKey{SortDefault, SortPriceAsc, SortPriceDesc, SortRating, SortName}

// ParseSortKey разбирает ключ сортировки; пустая строка даёт SortDefault.
// Для неизвестного значения возвращает SortDefault и ErrUnknownSortKey.
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if key == "" {
		return SortDefault, nil
	}
	for _, known := range SortKeys {
		if key == known {
			return key, nil
		}
	}
	return SortDefault, fmt.Errorf("%w: %q", ErrUnknownSortKey, raw)
}

// Label возвращает подпись для UI.
func (k SortKey) Label() string {
	switch k {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortRating:
		return "Top Rated"
	case SortName:
		return "Alphabetical"
	default:
		return "Featured"
	}
}
