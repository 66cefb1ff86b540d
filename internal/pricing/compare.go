package pricing

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// ProductComparator сравнивает товары для сортировки: <0, 0, >0.
type ProductComparator func(a, b domain.Product) int

// Comparator возвращает компаратор для ключа сортировки; для SortDefault nil,
// что означает сохранение исходного порядка. Collator не потокобезопасен,
// поэтому компаратор создаётся на каждый вызов.
func Comparator(key domain.SortKey, tag language.Tag) ProductComparator {
	switch key {
	case domain.SortPriceAsc:
		return func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		}
	case domain.SortPriceDesc:
		return func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		}
	case domain.SortRating:
		return func(a, b domain.Product) int {
			return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
		}
	case domain.SortName:
		collator := collate.New(tag)
		return func(a, b domain.Product) int {
			return collator.CompareString(a.Title, b.Title)
		}
	default:
		return nil
	}
}
