package service

import (
	"github.com/stucom/basketball-fans-service/internal/repository"
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

// requireNoID guards create endpoints against client-supplied identifiers.
// A preset id on a create is rejected before any other check runs.
func requireNoID(id int64) error {
	if id != 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "a new entity cannot already have an id"}})
	}
	return nil
}

func requireID(id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return nil
}
