package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the Matchly application.
// Pattern: matchly:{module}:{operation}:{identifier}:{params?}

const (
	CACHE_PREFIX = "matchly"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENTS_UPCOMING = CACHE_PREFIX + ":events:upcoming"      // + :limit:X
	CACHE_KEY_EVENT_DETAIL    = CACHE_PREFIX + ":events:detail:uuid:"  // + event-id
)

const (
	TTL_EVENT_UPCOMING = 15 * time.Minute
	TTL_EVENT_DETAIL   = 2 * time.Hour
)

// ================== PAYMENTS MODULE ==================

const (
	// List of capture-failed settlements awaiting manual follow-up
	KEY_PAYMENT_RECONCILIATION_QUEUE = CACHE_PREFIX + ":payments:reconciliation"
)

// BuildEventDetailKey builds the cache key for a single event
func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

// BuildUpcomingEventsKey builds the cache key for the upcoming events list
func BuildUpcomingEventsKey(limit int) string {
	return fmt.Sprintf("%s:limit:%d", CACHE_KEY_EVENTS_UPCOMING, limit)
}
