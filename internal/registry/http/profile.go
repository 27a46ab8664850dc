package http

import (
	"encoding/json"
	"net/http"

	"github.com/eventdesk/registry/internal/registry/service"
	"github.com/eventdesk/registry/pkg/httpx"
	"github.com/eventdesk/registry/pkg/slogx"
)

type ProfileHandler struct {
	AuthService *service.AuthService
}

// HandleGet returns the authenticated caller's profile and roles.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == 0 {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "no authenticated user")
		return
	}

	user, err := h.AuthService.GetProfile(ctx, userID)
	if err != nil {
		log.Warn("failed to load profile", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "profile could not be loaded")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// HandleUpdate fills in the optional profile fields collected after first
// login.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == 0 {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "no authenticated user")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	user, err := h.AuthService.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		log.Error("profile update failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "profile could not be updated")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
