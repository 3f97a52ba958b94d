package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
)

// storeErr wraps a repository failure. Unique-index violations that slipped
// past the service-level checks surface as conflicts.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apierr.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierr.Conflict("duplicate", "%s: already exists", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
