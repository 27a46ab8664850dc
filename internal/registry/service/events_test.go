package service

import (
	"context"
	"testing"
	"time"

	"github.com/eventdesk/registry/internal/registry/domain"
	"github.com/eventdesk/registry/internal/registry/store"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, st store.Store, locationID int64, title, status string, desc *string) int64 {
	t.Helper()

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	id, err := st.Events().CreateEvent(context.Background(), domain.Event{
		Title:           title,
		Description:     desc,
		StartDate:       start,
		EndDate:         start.Add(8 * time.Hour),
		LocationID:      locationID,
		CategoryID:      1,
		Format:          "in-person",
		MaxParticipants: 100,
		TargetAudience:  "everyone",
		Status:          status,
	})
	require.NoError(t, err)
	return id
}

func TestListActiveEvents(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &EventService{Store: st}

	locID, err := st.Events().CreateLocation(ctx, "Main Hall")
	require.NoError(t, err)

	desc := "an active event"
	activeID := seedEvent(t, st, locID, "GopherCon", domain.EventStatusActive, &desc)
	seedEvent(t, st, locID, "Unpublished", "draft", nil)

	events, err := svc.ListActiveEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1, "only active events are listed")

	ev := events[0]
	require.Equal(t, activeID, ev.ID)
	require.Equal(t, "GopherCon", ev.Title)
	require.Equal(t, domain.EventStatusActive, ev.Status)

	// Location is eagerly loaded alongside the event.
	require.Equal(t, locID, ev.Location.ID)
	require.Equal(t, "Main Hall", ev.Location.Name)

	require.NotNil(t, ev.Description)
	require.Equal(t, desc, *ev.Description)
	require.Empty(t, ev.Sessions)
}

func TestListActiveEvents_NilDescription(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &EventService{Store: st}

	locID, err := st.Events().CreateLocation(ctx, "Annex")
	require.NoError(t, err)

	seedEvent(t, st, locID, "No Description", domain.EventStatusActive, nil)

	events, err := svc.ListActiveEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Nil(t, events[0].Description, "absent description stays nil, not empty string")
}

func TestListActiveEvents_Ordering(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &EventService{Store: st}

	locID, err := st.Events().CreateLocation(ctx, "Main Hall")
	require.NoError(t, err)

	later := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	earlier := later.AddDate(0, -1, 0)

	_, err = st.Events().CreateEvent(ctx, domain.Event{
		Title: "Second", StartDate: later, EndDate: later.Add(time.Hour),
		LocationID: locID, Status: domain.EventStatusActive,
	})
	require.NoError(t, err)
	_, err = st.Events().CreateEvent(ctx, domain.Event{
		Title: "First", StartDate: earlier, EndDate: earlier.Add(time.Hour),
		LocationID: locID, Status: domain.EventStatusActive,
	})
	require.NoError(t, err)

	events, err := svc.ListActiveEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "First", events[0].Title)
	require.Equal(t, "Second", events[1].Title)
}

func TestGetEvent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &EventService{Store: st}

	locID, err := st.Events().CreateLocation(ctx, "Annex")
	require.NoError(t, err)

	// GetEvent ignores status; drafts are still addressable by id.
	draftID := seedEvent(t, st, locID, "Draft Event", "draft", nil)

	ev, err := svc.GetEvent(ctx, draftID)
	require.NoError(t, err)
	require.Equal(t, "Draft Event", ev.Title)
	require.Equal(t, "Annex", ev.Location.Name)

	_, err = svc.GetEvent(ctx, draftID+1)
	require.ErrorIs(t, err, store.ErrNotFound)
}
