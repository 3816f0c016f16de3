package storage

import (
	"database/sql/driver"
	"strings"
	"sync"

	msqlite "modernc.org/sqlite"
)

// sqliteLowerFunc — скалярная функция SQLite, приводящая текст к нижнему
// регистру по правилам Unicode. Встроенная LOWER в SQLite меняет только ASCII.
const sqliteLowerFunc = "unicode_lower"

var registerFuncs = sync.OnceValue(func() error {
	return msqlite.RegisterDeterministicScalarFunction(sqliteLowerFunc, 1, unicodeLower)
})

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Lower возвращает выражение, приводящее колонку к нижнему регистру так же,
// как strings.ToLower на стороне Go.
func (d Dialect) Lower(column string) string {
	if d == DialectPostgres {
		return "LOWER(" + column + ")"
	}
	return sqliteLowerFunc + "(" + column + ")"
}
