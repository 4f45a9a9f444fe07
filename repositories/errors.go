package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/grantdesk-api/apperr"
)

// translate maps gorm errors onto application error kinds
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", entity)
	default:
		return apperr.Storage(err, "%s storage failure", entity)
	}
}

// Page is an offset page request. Zero values select the defaults.
type Page struct {
	Page     int
	PageSize int
}

// Normalize fills in defaults and caps the page size
func (p Page) Normalize() Page {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// likePattern builds a case-insensitive LIKE pattern usable on postgres and sqlite
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
