package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation — общий признак ошибок валидации форм.
var ErrValidation = errors.New("validation failed")

// ValidationError содержит сообщения по полям формы.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

// Add запоминает первое сообщение для поля.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// Err возвращает nil, если ошибок нет.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldNames возвращает имена полей с ошибками в алфавитном порядке.
func (e *ValidationError) FieldNames() []string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (e *ValidationError) Error() string {
	fields := e.FieldNames()
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
