package models

import "time"

// Payment — запись журнала платежей по абонементу. Записи только добавляются.
type Payment struct {
	ID             int       `json:"id"`
	SubscriptionID int       `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	PaymentDate    string    `json:"payment_date"`
	PaymentMethod  string    `json:"payment_method"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// DummyPayment используется для приёма данных платежа из формы.
// Пустая дата платежа заменяется сегодняшней.
type DummyPayment struct {
	SubscriptionID int     `json:"subscription_id" validate:"required,gt=0"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate    string  `json:"payment_date,omitempty" validate:"omitempty,isodate"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}
