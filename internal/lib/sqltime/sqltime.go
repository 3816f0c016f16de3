// Package sqltime сканирует отметки времени, которые разные движки
// возвращают по-разному: SQLite отдаёт текст, PostgreSQL — time.Time.
package sqltime

import (
	"fmt"
	"time"
)

var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time реализует sql.Scanner для колонок TIMESTAMP. NULL даёт нулевое время.
type Time struct {
	time.Time
}

// Scan разбирает значение колонки.
func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case int64:
		t.Time = time.Unix(v, 0).UTC()
		return nil
	}
	return fmt.Errorf("sqltime: unsupported type %T", src)
}

func (t *Time) parse(value string) error {
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqltime: cannot parse %q", value)
}
