package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchly/internal/shared/constants"
	"matchly/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Service interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error)

	// Lookup used by the offer lifecycle: returns the raw record so
	// callers can read status and start time.
	Lookup(ctx context.Context, id uuid.UUID) (*Event, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
	}
}

func (s *service) Lookup(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())

	// Try to get from cache first
	var cachedEvent EventResponse
	if err := s.getCache(ctx, cacheKey, &cachedEvent); err == nil {
		return &cachedEvent, nil
	}

	event, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	response := event.ToResponse()

	// Cache the result, best effort
	_ = s.setCache(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL)

	return &response, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	cacheKey := constants.BuildUpcomingEventsKey(limit)

	var cachedResult []EventResponse
	if err := s.getCache(ctx, cacheKey, &cachedResult); err == nil {
		return cachedResult, nil
	}

	events, err := s.repo.GetUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = event.ToResponse()
	}

	_ = s.setCache(ctx, cacheKey, responses, constants.TTL_EVENT_UPCOMING)

	return responses, nil
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.cacheService == nil {
		return nil
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}
