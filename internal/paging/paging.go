// Package paging validates the offset/limit pair used by the paged
// listing operation get_controlled_names, grounded on
// original_source/src/canisters/common/src/constants.rs.
package paging

import "github.com/icnaming/icnaming/internal/icnerrors"

const (
	MinLimit  = 1
	MaxLimit  = 100
	MinOffset = 0
	MaxOffset = 10000
)

// Page is a validated offset/limit pair.
type Page struct {
	Offset int
	Limit  int
}

// Validate checks offset and limit against the bounds above.
func Validate(offset, limit int) (Page, error) {
	if offset < MinOffset || offset > MaxOffset {
		return Page{}, icnerrors.ValueShouldBeInRangeError("offset", MinOffset, MaxOffset)
	}
	if limit < MinLimit || limit > MaxLimit {
		return Page{}, icnerrors.ValueShouldBeInRangeError("limit", MinLimit, MaxLimit)
	}
	return Page{Offset: offset, Limit: limit}, nil
}
