package persistence

import (
	"errors"

	"github.com/rentals/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps driver-level failures to domain errors. It relies on
// gorm.Config.TranslateError for ErrDuplicatedKey.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflict(entity + " already exists")
	}
	return err
}
