package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrNotInitialized — хранилище используется до Open или после Close.
	ErrNotInitialized = errors.New("storage is not initialized")
	// ErrConstraint — нарушено ограничение целостности (уникальность, внешний ключ и т.п.).
	ErrConstraint = errors.New("constraint violation")
)

// ConstraintKind — вид нарушенного ограничения.
type ConstraintKind int

// Виды ограничений.
const (
	ConstraintOther ConstraintKind = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintNotNull
	ConstraintCheck
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUnique:
		return "unique"
	case ConstraintForeignKey:
		return "foreign key"
	case ConstraintNotNull:
		return "not null"
	case ConstraintCheck:
		return "check"
	}
	return "other"
}

// ConstraintError — нарушение ограничения, сообщённое движком.
// Сообщение движка сохраняется без изменений.
type ConstraintError struct {
	Kind ConstraintKind
	Err  error
}

func (e *ConstraintError) Error() string {
	return e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать с ErrConstraint через errors.Is.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}

// IsConstraint сообщает, нарушено ли ограничение вида kind.
func IsConstraint(err error, kind ConstraintKind) bool {
	var cerr *ConstraintError
	return errors.As(err, &cerr) && cerr.Kind == kind
}

// Classify оборачивает ошибки ограничений движка в *ConstraintError,
// остальные ошибки возвращает как есть.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if kind, ok := sqliteConstraint(err); ok {
		return &ConstraintError{Kind: kind, Err: err}
	}
	if kind, ok := postgresConstraint(err); ok {
		return &ConstraintError{Kind: kind, Err: err}
	}
	return err
}

func sqliteConstraint(err error) (ConstraintKind, bool) {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ConstraintUnique, true
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ConstraintForeignKey, true
		case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
			return ConstraintNotNull, true
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
			return ConstraintCheck, true
		}
		if sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT {
			return fromMessage(err), true
		}
		return 0, false
	}
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "constraint failed") {
		return fromMessage(err), true
	}
	return 0, false
}

func fromMessage(err error) ConstraintKind {
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "unique constraint failed"):
		return ConstraintUnique
	case strings.Contains(message, "foreign key constraint failed"):
		return ConstraintForeignKey
	case strings.Contains(message, "not null constraint failed"):
		return ConstraintNotNull
	case strings.Contains(message, "check constraint failed"):
		return ConstraintCheck
	}
	return ConstraintOther
}

func postgresConstraint(err error) (ConstraintKind, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || !pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return 0, false
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ConstraintUnique, true
	case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
		return ConstraintForeignKey, true
	case pgerrcode.NotNullViolation:
		return ConstraintNotNull, true
	case pgerrcode.CheckViolation:
		return ConstraintCheck, true
	}
	return ConstraintOther, true
}
