package models

import (
	"encoding/json"
	"time"
)

const (
	// PlanCustom — тип плана по умолчанию.
	PlanCustom = "custom"

	// StatusActive — метка активного абонемента.
	StatusActive = "ACTIVE"
	// StatusExpired — метка неактивного абонемента.
	StatusExpired = "EXPIRED"
)

// Subscription представляет абонемент питания клиента.
// Даты хранятся строками в формате YYYY-MM-DD, время суток не учитывается.
// ClientName и ClientPhone заполняются только в выборках с присоединением клиента.
type Subscription struct {
	ID           int       `json:"id"`
	ClientID     int       `json:"client_id"`
	ClientName   string    `json:"client_name,omitempty"`
	ClientPhone  string    `json:"client_phone,omitempty"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	TotalDays    int       `json:"total_days"` // Считается при создании и изменении, при чтении не пересчитывается
	PlanType     string    `json:"plan_type"`
	TotalAmount  float64   `json:"total_amount"`
	AmountPaid   float64   `json:"amount_paid"`
	IsActive     bool      `json:"is_active"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

// Remaining возвращает остаток к оплате.
func (s Subscription) Remaining() float64 {
	return s.TotalAmount - s.AmountPaid
}

// Status возвращает метку статуса для отображения.
func (s Subscription) Status() string {
	if s.IsActive {
		return StatusActive
	}
	return StatusExpired
}

// Progress возвращает процент оплаты в диапазоне [0, 100].
// Абонемент с нулевой суммой считается полностью оплаченным.
func (s Subscription) Progress() float64 {
	if s.TotalAmount <= 0 {
		return 100
	}
	p := s.AmountPaid / s.TotalAmount * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// MarshalJSON добавляет к абонементу вычисляемые поля.
func (s Subscription) MarshalJSON() ([]byte, error) {
	type plain Subscription
	return json.Marshal(struct {
		plain
		RemainingAmount float64 `json:"remaining_amount"`
		Status          string  `json:"status"`
		Progress        float64 `json:"progress"`
	}{
		plain:           plain(s),
		RemainingAmount: s.Remaining(),
		Status:          s.Status(),
		Progress:        s.Progress(),
	})
}

// OverdueSubscription — активный абонемент с непогашенным остатком,
// остаток посчитан в запросе к хранилищу.
type OverdueSubscription struct {
	Subscription
	RemainingAmount float64 `json:"remaining_amount"`
}

// MarshalJSON сохраняет остаток, посчитанный хранилищем, поверх вычисляемых полей.
func (o OverdueSubscription) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(o.Subscription)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	fields["remaining_amount"] = o.RemainingAmount
	return json.Marshal(fields)
}

// DummySubscription используется для приёма данных нового абонемента из формы.
// Даты приходят строками, количество дней считается сервисом.
type DummySubscription struct {
	ClientID    int     `json:"client_id" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required,isodate"`
	EndDate     string  `json:"end_date" validate:"required,isodate"`
	TotalAmount float64 `json:"total_amount" validate:"required,gt=0"`
	AmountPaid  float64 `json:"amount_paid" validate:"gte=0"`
	PlanType    string  `json:"plan_type,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"` // nil — активен
	Notes       string  `json:"notes,omitempty"`
}

// DummySubscriptionUpdate используется для полного изменения абонемента.
// Клиент абонемента не меняется.
type DummySubscriptionUpdate struct {
	StartDate   string  `json:"start_date" validate:"required,isodate"`
	EndDate     string  `json:"end_date" validate:"required,isodate"`
	TotalAmount float64 `json:"total_amount" validate:"required,gt=0"`
	AmountPaid  float64 `json:"amount_paid" validate:"gte=0"`
	IsActive    bool    `json:"is_active"`
	PlanType    string  `json:"plan_type,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}
