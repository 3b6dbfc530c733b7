package listings

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")

	// ErrNotListingOwner is returned when a seller operates on a listing
	// they did not create.
	ErrNotListingOwner = errors.New("listing does not belong to this seller")

	// ErrListingNotDraft is returned when publish targets a listing that
	// already left DRAFT.
	ErrListingNotDraft = errors.New("listing is not a draft")

	// ErrListingNotOpen is returned when removal targets a listing that
	// is no longer DRAFT or ACTIVE.
	ErrListingNotOpen = errors.New("listing is not open")
)
