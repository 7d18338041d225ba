package postgres

import (
	"errors"
	"fmt"

	"github.com/dom/postboard/internal/domain"
	"gorm.io/gorm"
)

// translateError maps gorm errors onto the domain taxonomy, keeping the
// original error in the chain.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	default:
		return err
	}
}
