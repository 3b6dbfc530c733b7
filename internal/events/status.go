package events

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

func (s EventStatus) String() string {
	return string(s)
}

// AcceptsOffers reports whether buyers may still place offers for the event
func (s EventStatus) AcceptsOffers() bool {
	return s == EventStatusUpcoming
}
