// Package models содержит доменные структуры клиентов столовой, абонементов питания
// и платежей, а также входные структуры форм, которые валидируются до обращения
// к хранилищу.
package models

import "time"

// Client представляет клиента столовой.
type Client struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"` // Уникален среди всех клиентов
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyClient используется для приёма данных клиента из формы или JSON-запроса
// до валидации и преобразования в Client.
type DummyClient struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,phone"` // Не менее 10 цифр
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}
