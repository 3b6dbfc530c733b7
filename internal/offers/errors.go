package offers

import "errors"

var (
	ErrOfferNotFound = errors.New("offer not found")

	// ErrNotOfferOwner is returned when a buyer operates on an offer
	// they did not create.
	ErrNotOfferOwner = errors.New("offer does not belong to this buyer")

	// ErrOfferNotActive is returned when a lifecycle operation targets
	// an offer already in a terminal state.
	ErrOfferNotActive = errors.New("offer is not active")

	// ErrEventNotUpcoming is returned when an offer targets an event
	// that is not accepting offers.
	ErrEventNotUpcoming = errors.New("event is not upcoming")

	// ErrExpiryInPast is returned when the buyer supplies an expiry
	// deadline that has already passed.
	ErrExpiryInPast = errors.New("offer expiry is in the past")

	// ErrPaymentHoldFailed is returned when the payment service refuses
	// to authorize the hold; no offer is created in that case.
	ErrPaymentHoldFailed = errors.New("payment hold failed")

	// ErrHoldCancelFailed is returned when the payment hold could not be
	// released. The offer stays ACTIVE so funds are never orphaned.
	ErrHoldCancelFailed = errors.New("payment hold cancel failed")
)
