package models

import (
	"strings"

	"kiosk/internal/apperr"
)

// MaxPageLimit caps the number of documents a single list call may return.
const MaxPageLimit = 100

// Page selects a window of a sorted result. A zero Limit means no limit.
type Page struct {
	Offset int `json:"offset" validate:"gte=0"`
	Limit  int `json:"limit" validate:"gte=0,lte=100"`
}

// Validate checks the paging bounds.
func (p Page) Validate() error {
	return Validate(p)
}

// ItemFilter is the set of optional criteria accepted by the item search.
// Nil pointers and empty strings impose no constraint.
type ItemFilter struct {
	Name       string   `json:"name" validate:"omitempty,max=100"`
	MinPrice   *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"max_price" validate:"omitempty,gte=0"`
	CategoryID string   `json:"category_id" validate:"omitempty,max=64"`
	Available  *bool    `json:"available"`
	Page
}

// Validate checks field bounds and that the price range is not inverted.
func (f ItemFilter) Validate() error {
	if err := Validate(f); err != nil {
		return err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return apperr.Invalid("min_price must be less than or equal to max_price")
	}
	return nil
}

// Matches reports whether item satisfies every criterion set on f.
func (f ItemFilter) Matches(item MenuItem) bool {
	if f.Name != "" && !strings.Contains(FoldName(item.Name), FoldName(f.Name)) {
		return false
	}
	if f.MinPrice != nil && item.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && item.Price > *f.MaxPrice {
		return false
	}
	if f.CategoryID != "" && item.CategoryID != f.CategoryID {
		return false
	}
	if f.Available != nil && item.Available != *f.Available {
		return false
	}
	return true
}
