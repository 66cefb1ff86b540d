package domain

import "strings"

// Identity — текущий пользователь mock-сессии. Не является учётными данными.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewIdentity строит identity; пустое имя заменяется локальной частью email.
func NewIdentity(name, email string) Identity {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return Identity{Name: name, Email: email}
}

// IsZero сообщает об отсутствии данных.
func (i Identity) IsZero() bool {
	return i.Name == "" && i.Email == ""
}
