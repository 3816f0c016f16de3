package storage

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect описывает различия SQL между поддерживаемыми движками.
// Запросы репозиториев пишутся с плейсхолдерами "?".
type Dialect string

const (
	// DialectSQLite — встроенный SQLite (modernc.org/sqlite).
	DialectSQLite Dialect = "sqlite"
	// DialectPostgres — PostgreSQL через pgx.
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Rebind заменяет плейсхолдеры "?" на "$n" для PostgreSQL.
// Знаки вопроса внутри строковых литералов не трогаются.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inLiteral := false
	for _, r := range query {
		switch {
		case r == '\'':
			inLiteral = !inLiteral
			b.WriteRune(r)
		case r == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CurrentDate возвращает выражение текущей даты движка со сдвигом offsetDays
// в виде текста YYYY-MM-DD.
func (d Dialect) CurrentDate(offsetDays int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("to_char(CURRENT_DATE + %d, 'YYYY-MM-DD')", offsetDays)
	}
	return fmt.Sprintf("date('now', '%+d days')", offsetDays)
}

// DateColumn приводит текстовую колонку даты к календарной дате движка.
func (d Dialect) DateColumn(column string) string {
	if d == DialectPostgres {
		return column
	}
	return "date(" + column + ")"
}
