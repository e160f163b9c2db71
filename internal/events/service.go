package events

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Service wraps event business rules and the public-listing cache.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

// NewService constructs a Service. cache may be nil.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ListPublic returns published events, serving from the cache when
// possible. Concurrent cache misses share one store read.
func (s *Service) ListPublic(ctx context.Context) ([]Event, error) {
	if cached, ok := s.cache.GetPublic(ctx); ok {
		return cached, nil
	}
	result, err, _ := s.group.Do("public", func() (any, error) {
		events, err := s.repo.List(ctx, true)
		if err != nil {
			return nil, err
		}
		s.cache.SetPublic(ctx, events)
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Event), nil
}

// ListAll returns every event, drafts included.
func (s *Service) ListAll(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx, false)
}

// Get returns one event by id.
func (s *Service) Get(ctx context.Context, id int64) (*Event, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new event and invalidates the public cache.
func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event, err := s.repo.Create(ctx, Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Published:   req.Published,
	})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Bump(ctx)
	return event, nil
}

// Update applies the provided fields to one event and invalidates the
// public cache.
func (s *Service) Update(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	updates := make(map[string]any)
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, id)
	}
	event, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Bump(ctx)
	return event, nil
}

// Delete removes one event and invalidates the public cache.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Bump(ctx)
	return nil
}
