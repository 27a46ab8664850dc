package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventdesk/registry/internal/registry/service"
	"github.com/eventdesk/registry/internal/registry/store"
	"github.com/eventdesk/registry/pkg/httpx"
	"github.com/eventdesk/registry/pkg/slogx"
)

type EventsHandler struct {
	EventService *service.EventService
}

// HandleList returns all active events with their locations.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	events, err := h.EventService.ListActiveEvents(ctx)
	if err != nil {
		log.Error("event listing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "events could not be loaded")
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"events": out})
}

// HandleGet returns a single event by id.
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "event id must be numeric")
		return
	}

	ev, err := h.EventService.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "no such event")
			return
		}
		log.Error("event lookup failed", "event_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "event could not be loaded")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toEventResponse(ev))
}
