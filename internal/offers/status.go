package offers

// OfferStatus represents the lifecycle state of a buyer offer
type OfferStatus string

const (
	StatusActive    OfferStatus = "ACTIVE"
	StatusMatched   OfferStatus = "MATCHED"
	StatusCancelled OfferStatus = "CANCELLED"
	StatusExpired   OfferStatus = "EXPIRED"
	StatusError     OfferStatus = "ERROR"
)

// IsValid checks if the status is one of the known lifecycle states
func (s OfferStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusMatched, StatusCancelled, StatusExpired, StatusError:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the offer can never change state again.
// Every state except ACTIVE is terminal.
func (s OfferStatus) IsTerminal() bool {
	return s != StatusActive
}

// String returns the string representation of the status
func (s OfferStatus) String() string {
	return string(s)
}

// HoldState tracks the payment authorization attached to an offer
type HoldState string

const (
	HoldAuthorized    HoldState = "AUTHORIZED"
	HoldCaptured      HoldState = "CAPTURED"
	HoldCancelled     HoldState = "CANCELLED"
	HoldCaptureFailed HoldState = "CAPTURE_FAILED"
)

// IsValid checks if the hold state is known
func (h HoldState) IsValid() bool {
	switch h {
	case HoldAuthorized, HoldCaptured, HoldCancelled, HoldCaptureFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the hold state
func (h HoldState) String() string {
	return string(h)
}
