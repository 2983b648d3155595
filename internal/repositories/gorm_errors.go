package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/apperror"

	"gorm.io/gorm"
)

// gormError maps GORM's sentinel errors onto the repository sentinels.
// The database handle must be opened with TranslateError enabled for
// duplicate keys to be recognised.
func gormError(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, apperror.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, apperror.ErrDuplicate)
	default:
		return fmt.Errorf("failed to access %s: %w", what, err)
	}
}
