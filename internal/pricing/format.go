// Package pricing содержит чистые функции представления цен и рейтингов.
package pricing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// Ellipsis добавляется к обрезанному тексту.
const Ellipsis = "…"

// DefaultTruncateLength задаёт длину обрезки заголовков в карточках товара.
const DefaultTruncateLength = 60

// Formatter форматирует суммы по правилам локали: символ валюты,
// разделитель разрядов и ровно два знака после запятой.
type Formatter struct {
	printer  *message.Printer
	symbol   string
	decimal  string
	currency currency.Unit
}

var defaultFormatter = MustFormatter(language.AmericanEnglish, "USD", "$")

// NewFormatter создаёт форматтер для локали и ISO-кода валюты.
func NewFormatter(tag language.Tag, isoCode, symbol string) (*Formatter, error) {
	unit, err := currency.ParseISO(isoCode)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", isoCode, err)
	}
	if symbol == "" {
		symbol = unit.String()
	}

	printer := message.NewPrinter(tag)
	// Десятичный разделитель берём из форматирования 0.5 в этой локали.
	sample := printer.Sprintf("%.1f", 0.5)
	sep := strings.TrimSuffix(strings.TrimPrefix(sample, "0"), "5")
	if sep == "" {
		sep = "."
	}

	return &Formatter{
		printer:  printer,
		symbol:   symbol,
		decimal:  sep,
		currency: unit,
	}, nil
}

// MustFormatter паникует при неверном коде валюты; для пакетных значений.
func MustFormatter(tag language.Tag, isoCode, symbol string) *Formatter {
	f, err := NewFormatter(tag, isoCode, symbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Currency возвращает ISO-код валюты форматтера.
func (f *Formatter) Currency() string {
	return f.currency.String()
}

// Format рендерит сумму, например "$1,234.50" или "-$5.00".
func (f *Formatter) Format(amount domain.Money) string {
	fixed := amount.Decimal.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Decimal.Round(2).IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(f.symbol)
	b.WriteString(f.groupDigits(whole))
	b.WriteString(f.decimal)
	b.WriteString(frac)
	return b.String()
}

// groupDigits расставляет разделители разрядов. Значения за пределами int64
// группируются по три цифры запятой локали, полученной из printer.
func (f *Formatter) groupDigits(whole string) string {
	var n int64
	if _, err := fmt.Sscan(whole, &n); err == nil && len(whole) <= 18 {
		return f.printer.Sprintf("%d", n)
	}

	sep := strings.Trim(f.printer.Sprintf("%d", 1000), "10")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatPrice форматирует сумму в en-US / USD.
func FormatPrice(amount domain.Money) string {
	return defaultFormatter.Format(amount)
}

// TruncateText возвращает text без изменений, если в нём не больше maxLength символов,
// иначе первые maxLength символов и многоточие. Границы слов не учитываются.
func TruncateText(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + Ellipsis
}

// DefaultFormatter возвращает форматтер en-US / USD.
func DefaultFormatter() *Formatter {
	return defaultFormatter
}
