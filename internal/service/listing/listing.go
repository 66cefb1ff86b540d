package listing

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/pricing"
)

const (
	// FeaturedCount: сколько товаров показывает главная страница.
	FeaturedCount = 8
	// RelatedCount: сколько похожих товаров показывает карточка.
	RelatedCount = 4
)

type options struct {
	locale language.Tag
}

// Option настраивает DeriveView.
type Option func(*options)

// WithLocale задаёт язык сравнения названий при сортировке по имени.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// DeriveView фильтрует и сортирует товары. Входной срез не изменяется, результат всегда новый срез.
// Сортировка устойчива: равные элементы сохраняют порядок после фильтрации.
func DeriveView(products []domain.Product, filter domain.FilterSpec, key domain.SortKey, opts ...Option) []domain.Product {
	o := options{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	fold := cases.Fold()
	search := fold.String(filter.SearchText)

	view := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(fold.String(product.Title), search) &&
			!strings.Contains(fold.String(product.Category), search) {
			continue
		}
		if product.Price.Cmp(filter.MinPrice) < 0 || product.Price.Cmp(filter.MaxPrice) > 0 {
			continue
		}
		view = append(view, product)
	}

	if compare := pricing.Comparator(key, o.locale); compare != nil {
		slices.SortStableFunc(view, compare)
	}
	return view
}

// Featured возвращает первые n товаров.
func Featured(products []domain.Product, n int) []domain.Product {
	n = min(max(n, 0), len(products))
	return slices.Clone(products[:n])
}

// Related возвращает до n товаров той же категории, кроме самого товара.
func Related(products []domain.Product, product domain.Product, n int) []domain.Product {
	related := make([]domain.Product, 0, n)
	for _, candidate := range products {
		if len(related) >= n {
			break
		}
		if candidate.Category == product.Category && candidate.ID != product.ID {
			related = append(related, candidate)
		}
	}
	return related
}
