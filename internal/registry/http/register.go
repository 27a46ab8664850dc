package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eventdesk/registry/internal/registry/service"
	"github.com/eventdesk/registry/pkg/httpx"
	"github.com/eventdesk/registry/pkg/slogx"
)

// MinPasswordLength mirrors the registration form's rule; the service layer
// does not re-check it.
const MinPasswordLength = 6

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AvatarPath      string `json:"avatar_path,omitempty"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	// Form-level preconditions live here, not in the service.
	if strings.TrimSpace(req.Email) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}
	if len(req.Password) < MinPasswordLength {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "password must be at least 6 characters")
		return
	}
	if req.Password != req.ConfirmPassword {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "passwords do not match")
		return
	}

	user, err := h.AuthService.Register(ctx, req.Email, req.Password, req.AvatarPath)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict, "email_taken", "a user with this email already exists")
			return
		}
		log.Error("registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "registration could not be completed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}
