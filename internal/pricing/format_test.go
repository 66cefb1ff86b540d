package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "$0.00"},
		{amount: "9.99", want: "$9.99"},
		{amount: "109.95", want: "$109.95"},
		{amount: "1234.5", want: "$1,234.50"},
		{amount: "1000000", want: "$1,000,000.00"},
		{amount: "-5", want: "-$5.00"},
		{amount: "0.005", want: "$0.01"},
		{amount: "123456789012345678901.25", want: "$123,456,789,012,345,678,901.25"},
	}

	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPrice(domain.MustMoney(tc.amount)))
		})
	}
}

func TestFormatPrice_ZeroValueMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPrice(domain.Money{}))
}

func TestNewFormatter_InvalidCurrency(t *testing.T) {
	_, err := NewFormatter(language.AmericanEnglish, "XYZW", "")
	require.Error(t, err)
}

func TestFormatter_Currency(t *testing.T) {
	f, err := NewFormatter(language.BritishEnglish, "GBP", "£")
	require.NoError(t, err)

	assert.Equal(t, "GBP", f.Currency())
	assert.Equal(t, "£12.00", f.Format(domain.MustMoney("12")))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "Hello…", TruncateText("Hello World", 5))
	assert.Equal(t, "Hi", TruncateText("Hi", 5))
	assert.Equal(t, "Hello", TruncateText("Hello", 5))
	assert.Equal(t, "Привет…", TruncateText("Привет мир", 6))
	assert.Equal(t, Ellipsis, TruncateText("abc", 0))
}

func TestRenderStars(t *testing.T) {
	cases := []struct {
		rating float64
		want   []Star
	}{
		{rating: 3.5, want: []Star{StarFull, StarFull, StarFull, StarHalf, StarEmpty}},
		{rating: 5, want: []Star{StarFull, StarFull, StarFull, StarFull, StarFull}},
		{rating: 0, want: []Star{StarEmpty, StarEmpty, StarEmpty, StarEmpty, StarEmpty}},
		{rating: 4.4, want: []Star{StarFull, StarFull, StarFull, StarFull, StarEmpty}},
		{rating: 0.5, want: []Star{StarHalf, StarEmpty, StarEmpty, StarEmpty, StarEmpty}},
	}

	for _, tc := range cases {
		got := RenderStars(tc.rating)
		require.Len(t, got, MaxStars)
		assert.Equal(t, tc.want, got, "rating %v", tc.rating)
	}
}

func TestComparator(t *testing.T) {
	cheap := domain.Product{ID: 1, Title: "Banana", Price: domain.MustMoney("1"), Rating: domain.Rating{Rate: 2}}
	pricey := domain.Product{ID: 2, Title: "apple", Price: domain.MustMoney("10"), Rating: domain.Rating{Rate: 4}}

	assert.Nil(t, Comparator(domain.SortDefault, language.English))
	assert.Negative(t, Comparator(domain.SortPriceAsc, language.English)(cheap, pricey))
	assert.Positive(t, Comparator(domain.SortPriceDesc, language.English)(cheap, pricey))
	assert.Positive(t, Comparator(domain.SortRating, language.English)(cheap, pricey))
	// Байтово "Banana" < "apple", но collation сравнивает без учёта регистра в первую очередь.
	assert.Positive(t, Comparator(domain.SortName, language.English)(cheap, pricey))
}
