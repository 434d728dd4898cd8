package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")
	ErrJobNotRunning  = errors.New("job is not running")
)

type ConstraintKind string

const (
	UniqueConstraint     ConstraintKind = "unique"
	ForeignKeyConstraint ConstraintKind = "foreign_key"
)

// ConstraintError is a create or update rejected by the database. Message is the
// driver's own diagnostic.
type ConstraintError struct {
	Kind    ConstraintKind
	Message string
	err     error
}

func (e *ConstraintError) Error() string {
	return e.Message
}

func (e *ConstraintError) Unwrap() error {
	return e.err
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrDuplicateKey && e.Kind == UniqueConstraint
}

// translateError maps driver errors onto the store error set.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &ConstraintError{Kind: UniqueConstraint, Message: pgMessage(pgErr), err: err}
		case pgerrcode.ForeignKeyViolation:
			return &ConstraintError{Kind: ForeignKeyConstraint, Message: pgMessage(pgErr), err: err}
		}
		return err
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &ConstraintError{Kind: UniqueConstraint, Message: sqliteErr.Error(), err: err}
		case sqlite3.ErrConstraintForeignKey:
			return &ConstraintError{Kind: ForeignKeyConstraint, Message: sqliteErr.Error(), err: err}
		}
	}

	return err
}

func pgMessage(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return fmt.Sprintf("%s: %s", pgErr.Message, pgErr.Detail)
	}
	return pgErr.Message
}
