package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConstraintKind names the kind of database constraint a write violated.
type ConstraintKind string

const (
	ConstraintNone       ConstraintKind = ""
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
)

// Sentinels reachable through errors.Is on errors returned by WrapConstraintError.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrNotNullViolation    = errors.New("not null constraint violation")
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// ClassifyError reports which constraint, if any, err represents. It
// understands GORM's translated errors, raw PostgreSQL errors, and SQLite
// error text.
func ClassifyError(err error) ConstraintKind {
	if err == nil {
		return ConstraintNone
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ConstraintUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ConstraintForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ConstraintCheck
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ConstraintUnique
		case pgCheckViolation:
			return ConstraintCheck
		case pgForeignKeyViolation:
			return ConstraintForeignKey
		case pgNotNullViolation:
			return ConstraintNotNull
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"), strings.Contains(msg, "duplicate key"):
		return ConstraintUnique
	case strings.Contains(msg, "check constraint"):
		return ConstraintCheck
	case strings.Contains(msg, "foreign key constraint"):
		return ConstraintForeignKey
	case strings.Contains(msg, "not null constraint"):
		return ConstraintNotNull
	}
	return ConstraintNone
}

// ConstraintError is a driver error tagged with the constraint it violated.
type ConstraintError struct {
	Kind ConstraintKind
	Err  error
}

func (e *ConstraintError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the driver error and the sentinel for Kind.
func (e *ConstraintError) Unwrap() []error {
	return []error{e.Err, sentinelFor(e.Kind)}
}

func sentinelFor(kind ConstraintKind) error {
	switch kind {
	case ConstraintUnique:
		return ErrUniqueViolation
	case ConstraintCheck:
		return ErrCheckViolation
	case ConstraintForeignKey:
		return ErrForeignKeyViolation
	default:
		return ErrNotNullViolation
	}
}

// WrapConstraintError returns err tagged as a ConstraintError when it is a
// constraint violation, and err unchanged otherwise.
func WrapConstraintError(err error) error {
	kind := ClassifyError(err)
	if kind == ConstraintNone {
		return err
	}
	return &ConstraintError{Kind: kind, Err: err}
}
