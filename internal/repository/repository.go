// Package repository is the persistence layer. Repositories hold an explicit
// *gorm.DB handle and translate gorm errors into the apperr taxonomy so the
// layers above never see driver errors.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
)

// translate maps a gorm error onto the error taxonomy. what names the entity
// for the message.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", what)
	default:
		return apperr.Unavailable(err, "store operation on %s failed", what)
	}
}
