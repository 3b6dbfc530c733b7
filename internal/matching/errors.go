package matching

import "errors"

var (
	// ErrOfferNotAvailable is the race-arbitration error: the offer was
	// not ACTIVE when re-read under lock. Expected under contention.
	ErrOfferNotAvailable = errors.New("offer not available")

	// ErrSectionMismatch is returned when the fulfillment's section is
	// not among the offer's desired sections.
	ErrSectionMismatch = errors.New("section does not match offer")

	// ErrSeatCountMismatch is returned when the seat assignment does not
	// cover the offer's quantity.
	ErrSeatCountMismatch = errors.New("seat count does not match offer quantity")

	// ErrListingNotAvailable is returned when an instant match targets a
	// listing that left ACTIVE before the settlement locked it.
	ErrListingNotAvailable = errors.New("listing not available")

	// ErrSettlementWriteFailed means the atomic settlement write did not
	// commit. No partial records exist and the offer remains active.
	ErrSettlementWriteFailed = errors.New("settlement write failed")
)
