package repository

import (
	"errors"
	"fmt"

	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// DuplicateKeyError reports a unique constraint violation. Constraint is
// empty when the driver does not expose it.
type DuplicateKeyError struct {
	Constraint string
	Err        error
}

func (e *DuplicateKeyError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("duplicate key violates %s", e.Constraint)
	}
	return "duplicate key"
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

// Field names the user attribute guarded by the violated index.
func (e *DuplicateKeyError) Field() string {
	switch e.Constraint {
	case model.UserMobileIndex:
		return "mobile_number"
	case model.UserLicenseIndex:
		return "license_number"
	case model.UserEmailIndex:
		return "email"
	default:
		return ""
	}
}

// IsDuplicateKey reports whether err is a unique violation from any layer.
func IsDuplicateKey(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}

// translateError turns driver-level unique violations into
// *DuplicateKeyError and passes everything else through.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &DuplicateKeyError{Constraint: pgErr.ConstraintName, Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateKeyError{Err: err}
	}

	return err
}
