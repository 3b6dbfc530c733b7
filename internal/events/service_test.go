package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"matchly/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]*Event
	reads  int
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uuid.UUID]*Event)}
}

func (s *fakeEventStore) Create(_ context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id uuid.UUID) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if event, ok := s.events[id]; ok {
		copied := *event
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeEventStore) GetUpcoming(_ context.Context, limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	var result []Event
	for _, event := range s.events {
		if event.Status == EventStatusUpcoming && len(result) < limit {
			result = append(result, *event)
		}
	}
	return result, nil
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error { return nil }
func (c *memoryCache) Exists(context.Context, string) bool         { return false }
func (c *memoryCache) Ping(context.Context) error                  { return nil }

func TestLookup_NotFound(t *testing.T) {
	service := NewService(newFakeEventStore(), nil)

	_, err := service.Lookup(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetEventByID_CachesResult(t *testing.T) {
	store := newFakeEventStore()
	service := NewService(store, newMemoryCache())

	event := &Event{
		ID:       uuid.New(),
		Name:     "Cached Show",
		Venue:    "Main Hall",
		StartsAt: time.Now().Add(24 * time.Hour),
		Status:   EventStatusUpcoming,
	}
	require.NoError(t, store.Create(context.Background(), event))

	first, err := service.GetEventByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached Show", first.Name)

	readsAfterFirst := store.reads
	second, err := service.GetEventByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, readsAfterFirst, store.reads, "second read served from cache")
}

func TestGetUpcomingEvents_ClampsLimit(t *testing.T) {
	store := newFakeEventStore()
	service := NewService(store, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Create(context.Background(), &Event{
			ID:       uuid.New(),
			Name:     "Show",
			Venue:    "Hall",
			StartsAt: time.Now().Add(time.Hour),
			Status:   EventStatusUpcoming,
		}))
	}

	result, err := service.GetUpcomingEvents(context.Background(), -5)
	require.NoError(t, err)
	assert.Len(t, result, 3)
}

func TestEventStatus_AcceptsOffers(t *testing.T) {
	assert.True(t, EventStatusUpcoming.AcceptsOffers())
	assert.False(t, EventStatusCompleted.AcceptsOffers())
	assert.False(t, EventStatusCancelled.AcceptsOffers())
}
