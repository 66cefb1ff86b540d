package checkout

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// Step — шаг оформления.
type Step int

const (
	StepInformation Step = iota
	StepShipping
	StepPayment
)

// Steps перечисляет шаги в порядке прохождения.
var Steps = []Step{StepInformation, StepShipping, StepPayment}

func (s Step) String() string {
	switch s {
	case StepInformation:
		return "Information"
	case StepShipping:
		return "Shipping"
	case StepPayment:
		return "Payment"
	default:
		return "Unknown"
	}
}

// Countries перечисляет страны, в которые возможна доставка.
var Countries = map[string]string{
	"US": "United States",
	"CA": "Canada",
	"GB": "United Kingdom",
}

// Form — все поля оформления. Данные карты не сохраняются и никуда не отправляются.
type Form struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	State     string `json:"state"`

	Shipping string `json:"shipping"`

	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// ShippingMethod возвращает выбранный способ доставки; неизвестное значение считается standard.
func (f Form) ShippingMethod() domain.ShippingMethod {
	method, _ := domain.ParseShippingMethod(f.Shipping)
	return method
}

// ShipTo возвращает адрес доставки из формы.
func (f Form) ShipTo() domain.ShippingAddress {
	country := strings.ToUpper(strings.TrimSpace(f.Country))
	if country == "" {
		country = "US"
	}
	return domain.ShippingAddress{
		Email:     strings.TrimSpace(f.Email),
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Address:   strings.TrimSpace(f.Address),
		City:      strings.TrimSpace(f.City),
		Zip:       strings.TrimSpace(f.Zip),
		Country:   country,
	}
}

// CardLast4 возвращает последние четыре цифры номера карты.
func (f Form) CardLast4() string {
	digits := onlyDigits(f.CardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// ValidateStep проверяет поля одного шага.
func ValidateStep(step Step, form Form) error {
	var verr domain.ValidationError
	switch step {
	case StepInformation:
		validateInformation(&verr, form)
	case StepShipping:
		if _, err := domain.ParseShippingMethod(form.Shipping); err != nil {
			verr.Add("shipping", "Choose standard or express shipping")
		}
	case StepPayment:
		validatePayment(&verr, form)
	}
	return verr.Err()
}

// Validate проверяет все шаги сразу; сообщения собираются по всем полям.
func Validate(form Form) error {
	var all domain.ValidationError
	for _, step := range Steps {
		var verr *domain.ValidationError
		if errors.As(ValidateStep(step, form), &verr) {
			for field, message := range verr.Fields {
				all.Add(field, message)
			}
		}
	}
	return all.Err()
}

func validateInformation(verr *domain.ValidationError, form Form) {
	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		verr.Add("email", "Email is required")
	case !strings.Contains(email, "@"):
		verr.Add("email", "Enter a valid email address")
	}
	required := []struct{ field, value, message string }{
		{"first_name", form.FirstName, "First name is required"},
		{"last_name", form.LastName, "Last name is required"},
		{"address", form.Address, "Address is required"},
		{"city", form.City, "City is required"},
		{"zip", form.Zip, "ZIP is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.field, r.message)
		}
	}
	if _, ok := Countries[form.ShipTo().Country]; !ok {
		verr.Add("country", "We do not ship to this country")
	}
}

func validatePayment(verr *domain.ValidationError, form Form) {
	if strings.TrimSpace(form.CardName) == "" {
		verr.Add("card_name", "Name on card is required")
	}

	number := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, form.CardNumber)
	switch {
	case number == "":
		verr.Add("card_number", "Card number is required")
	case onlyDigits(number) != number || len(number) < 12 || len(number) > 19:
		verr.Add("card_number", "Enter a valid card number")
	}

	if !validExpiry(form.Expiry) {
		verr.Add("expiry", "Use MM / YY")
	}

	cvv := strings.TrimSpace(form.CVV)
	if len(cvv) < 3 || len(cvv) > 4 || onlyDigits(cvv) != cvv {
		verr.Add("cvv", "Enter a valid CVV")
	}
}

// validExpiry принимает "MM/YY" и "MM / YY".
func validExpiry(raw string) bool {
	month, year, ok := strings.Cut(strings.ReplaceAll(raw, " ", ""), "/")
	if !ok || len(month) != 2 || len(year) != 2 || onlyDigits(year) != year {
		return false
	}
	m, err := strconv.Atoi(month)
	return err == nil && m >= 1 && m <= 12
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			return r
		}
		return -1
	}, s)
}

// Flow — состояние пошагового оформления: Information → Shipping → Payment.
type Flow struct {
	step     Step
	form     Form
	complete bool
}

// NewFlow начинает оформление с шага Information.
func NewFlow() *Flow {
	return &Flow{step: StepInformation, form: Form{Country: "US", Shipping: string(domain.ShippingStandard)}}
}

// Step возвращает текущий шаг.
func (f *Flow) Step() Step { return f.step }

// Form возвращает последнюю принятую форму.
func (f *Flow) Form() Form { return f.form }

// Complete сообщает, что все шаги пройдены.
func (f *Flow) Complete() bool { return f.complete }

// Advance проверяет поля текущего шага и переходит к следующему.
// При ошибке валидации шаг и форма не меняются.
func (f *Flow) Advance(form Form) error {
	if err := ValidateStep(f.step, form); err != nil {
		return err
	}
	f.form = form
	if f.step == StepPayment {
		f.complete = true
		return nil
	}
	f.step++
	return nil
}

// Back возвращает на предыдущий шаг, но не раньше Information.
func (f *Flow) Back() {
	f.complete = false
	if f.step > StepInformation {
		f.step--
	}
}
