// Package validate настраивает валидатор входных структур и помечает
// ошибки проверки, чтобы вызывающий код мог отличить их от ошибок хранилища.
package validate

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/go-playground/validator"
)

// ErrValidation помечает все ошибки проверки входных данных.
var ErrValidation = errors.New("validation failed")

// MinPhoneDigits — минимальное количество цифр в номере телефона.
const MinPhoneDigits = 10

// New создаёт валидатор с тегами phone и isodate.
func New() *validator.Validate {
	v := validator.New()
	// Ошибки регистрации возможны только при пустом имени тега.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return countDigits(fl.Field().String()) >= MinPhoneDigits
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return v
}

// Struct проверяет структуру и оборачивает ошибки валидатора в ErrValidation.
// Исходные validator.ValidationErrors остаются доступны через errors.As.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// Error — ошибка проверки с человеко-читаемым сообщением.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return ErrValidation.Error() + ": " + e.Msg
}

// Is позволяет сравнивать с ErrValidation через errors.Is.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Fail возвращает ошибку проверки с человеко-читаемым сообщением.
func Fail(msg string) error {
	return &Error{Msg: msg}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
