package session

import (
	"strings"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// MinPasswordLength задаёт минимальную длину пароля при регистрации.
const MinPasswordLength = 6

// LoginForm содержит поля формы входа.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationForm содержит поля формы регистрации.
type RegistrationForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate проверяет форму входа и возвращает личность для Login.
func (f LoginForm) Validate() (domain.Identity, error) {
	var verr domain.ValidationError
	validateCredentials(&verr, f.Email, f.Password)
	if err := verr.Err(); err != nil {
		return domain.Identity{}, err
	}
	return domain.NewIdentity("", f.Email), nil
}

// Validate проверяет форму регистрации и возвращает личность для Login.
func (f RegistrationForm) Validate() (domain.Identity, error) {
	var verr domain.ValidationError
	validateCredentials(&verr, f.Email, f.Password)
	if f.Password != f.ConfirmPassword {
		verr.Add("confirm_password", "Passwords do not match")
	}
	if len(f.Password) < MinPasswordLength {
		verr.Add("password", "Password must be at least 6 characters")
	}
	if err := verr.Err(); err != nil {
		return domain.Identity{}, err
	}
	return domain.NewIdentity(f.Name, f.Email), nil
}

func validateCredentials(verr *domain.ValidationError, email, password string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		verr.Add("email", "Email is required")
	case !strings.Contains(email, "@"):
		verr.Add("email", "Enter a valid email address")
	}
	if password == "" {
		verr.Add("password", "Password is required")
	}
}
