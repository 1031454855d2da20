package service

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ecotrack/internal/errors"
)

// notFound translates a missing row into the domain not-found error.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

// deleteFailed translates store errors raised while deleting a referenced entity.
func deleteFailed(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrReferenceInUse
	default:
		return err
	}
}
