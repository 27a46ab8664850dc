package service

import (
	"context"

	"github.com/eventdesk/registry/internal/registry/domain"
	"github.com/eventdesk/registry/internal/registry/store"
)

type EventService struct {
	Store store.Store
}

// ListActiveEvents returns all events with status "active", each with its
// location eagerly loaded. Sessions are never populated by this service.
func (s *EventService) ListActiveEvents(ctx context.Context) ([]domain.Event, error) {
	return s.Store.Events().ListActiveEvents(ctx)
}

// GetEvent fetches a single event by id.
func (s *EventService) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	return s.Store.Events().GetEventByID(ctx, id)
}
