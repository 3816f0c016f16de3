// Package days считает длительность абонемента в календарных днях.
package days

import (
	"fmt"
	"math"
	"time"
)

// Layout — формат календарной даты на границе API.
const Layout = "2006-01-02"

// Count возвращает количество дней между началом и концом, округлённое вверх.
// Для конца раньше начала результат отрицательный или нулевой.
func Count(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// Between разбирает даты в формате YYYY-MM-DD и возвращает Count для них.
func Between(startDate, endDate string) (int, error) {
	start, err := Parse(startDate)
	if err != nil {
		return 0, err
	}
	end, err := Parse(endDate)
	if err != nil {
		return 0, err
	}
	return Count(start, end), nil
}

// Parse разбирает дату в формате YYYY-MM-DD в UTC.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// Format возвращает календарную дату t в формате YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}
