package domain

import (
	"github.com/shopspring/decimal"
)

// Money — денежная сумма без потери точности.
// В JSON кодируется числом, при чтении принимает и число, и строку.
type Money struct {
	decimal.Decimal
}

// Zero хранит нулевую сумму с инициализированным значением.
var Zero = Money{Decimal: decimal.Zero}

// NewMoney оборачивает decimal.Decimal.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromString разбирает десятичную строку вида "109.95".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

// MustMoney используется в тестах и константах.
func MustMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

// MoneyFromCents строит сумму из минимальных единиц.
func MoneyFromCents(cents int64) Money {
	return Money{Decimal: decimal.New(cents, -2)}
}

// Add складывает суммы.
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// Sub вычитает other.
func (m Money) Sub(other Money) Money {
	return Money{Decimal: m.Decimal.Sub(other.Decimal)}
}

// Times умножает сумму на количество.
func (m Money) Times(qty int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

// Cmp сравнивает суммы: -1, 0 или 1.
func (m Money) Cmp(other Money) int {
	return m.Decimal.Cmp(other.Decimal)
}

// RoundCents округляет до двух знаков (half away from zero).
func (m Money) RoundCents() Money {
	return Money{Decimal: m.Decimal.Round(2)}
}

// MarshalJSON пишет сумму JSON-числом.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON принимает число или строку.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
