// Package handlers содержит общие помощники HTTP-обработчиков:
// разбор параметров URL, декодирование тела и ответы об ошибках проверки.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/saranzafar/hotel-book/internal/http/response"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/lib/validate"
)

// URLID достаёт положительный целочисленный параметр name из маршрута chi.
func URLID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// Decode читает JSON-тело запроса в v. При ошибке отвечает 400 и возвращает false.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return false
	}
	return true
}

// BadID отвечает 400 на некорректный идентификатор в URL.
func BadID(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Error("failed to decode id from url", sl.Err(err))
	w.WriteHeader(http.StatusBadRequest)
	render.JSON(w, r, response.Error("failed to decode id from url"))
}

// Validation отвечает 422, если err — ошибка проверки входных данных,
// и возвращает true. Иначе ничего не пишет.
func Validation(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) bool {
	if !errors.Is(err, validate.ErrValidation) {
		return false
	}
	log.Info("validation failed", sl.Err(err))
	w.WriteHeader(http.StatusUnprocessableEntity)

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		render.JSON(w, r, response.ValidationError(errs))
		return true
	}
	msg := validate.ErrValidation.Error()
	var verr *validate.Error
	if errors.As(err, &verr) {
		msg = verr.Msg
	}
	render.JSON(w, r, response.Error(msg))
	return true
}

// Fail пишет ошибку с кодом status и сообщением msg.
func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	render.JSON(w, r, response.Error(msg))
}
