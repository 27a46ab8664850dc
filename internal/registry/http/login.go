package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eventdesk/registry/internal/registry/service"
	"github.com/eventdesk/registry/pkg/httpx"
	"github.com/eventdesk/registry/pkg/slogx"
	"github.com/eventdesk/registry/pkg/tokenx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Sessions    *tokenx.Issuer
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	user, err := h.AuthService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Identical response for unknown email and wrong password.
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "login could not be completed")
		return
	}

	token, err := h.Sessions.Mint(tokenx.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	}, time.Now())
	if err != nil {
		log.Error("session token mint failed", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "login could not be completed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		SessionToken: token,
		User:         toUserResponse(user),
	})
}
