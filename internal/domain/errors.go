package domain

import "errors"

var (
	// ErrElementNotFound is returned when a business ID resolves to no element
	ErrElementNotFound = errors.New("network element not found")

	// ErrDuplicateBusinessID is returned when creating an element whose
	// business ID is already taken for that element type
	ErrDuplicateBusinessID = errors.New("business id already exists")

	// ErrUnknownSplitterLabel is returned in strict mode for split ratios
	// outside the rule table
	ErrUnknownSplitterLabel = errors.New("unknown splitter label")

	// ErrUnknownTechnology is returned in strict mode for PON technologies
	// outside the rule table
	ErrUnknownTechnology = errors.New("unknown PON technology")

	// ErrResolutionCancelled is returned when topology resolution is
	// cancelled before completing; a partial tree is never returned
	ErrResolutionCancelled = errors.New("topology resolution cancelled")
)
