package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eventdesk/registry/internal/registry/domain"
	"github.com/eventdesk/registry/internal/registry/service"
	"github.com/eventdesk/registry/internal/registry/store"
	"github.com/eventdesk/registry/internal/registry/store/drivers/sqlite"
	"github.com/eventdesk/registry/pkg/cryptox"
	"github.com/eventdesk/registry/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*Router, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sessions := &tokenx.Issuer{
		Secret: []byte("router-test-secret-0123456789abcdef"),
		Issuer: "registry-test",
		TTL:    time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(sessions, "test", st, logger)
	r.AuthService = &service.AuthService{Store: st}
	r.EventService = &service.EventService{Store: st}
	r.ApplyRoutes()

	return r, st
}

func doJSON(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":            "a@x.com",
		"password":         "qwerty123",
		"confirm_password": "qwerty123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decode[UserResponse](t, rec)
	require.Positive(t, user.UserID)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, "default_avatar.png", user.AvatarURL)
	require.Equal(t, []string{domain.RoleParticipant}, user.Roles)

	// Duplicate registration conflicts.
	rec = doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":            "a@x.com",
		"password":         "qwerty123",
		"confirm_password": "qwerty123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "email_taken", decode[map[string]string](t, rec)["error"])
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{
			"password": "qwerty123", "confirm_password": "qwerty123",
		}},
		{"short password", map[string]string{
			"email": "a@x.com", "password": "abc", "confirm_password": "abc",
		}},
		{"confirmation mismatch", map[string]string{
			"email": "a@x.com", "password": "qwerty123", "confirm_password": "qwerty124",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)
			rec := doJSON(t, r, http.MethodPost, "/v1/auth/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "invalid_request", decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "qwerty123", "confirm_password": "qwerty123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "qwerty123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	resp := decode[LoginResponse](t, rec)
	require.NotEmpty(t, resp.SessionToken)
	require.Equal(t, "a@x.com", resp.User.Email)
	require.NotNil(t, resp.User.LastLogin)

	// The minted token is accepted by the profile endpoint.
	rec = doJSON(t, r, http.MethodGet, "/v1/profile", resp.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, resp.User.UserID, decode[UserResponse](t, rec).UserID)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "qwerty123", "confirm_password": "qwerty123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	unknownEmail := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "qwerty123",
	})

	// Indistinguishable responses for the two failure modes.
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestProfileEndpoint_RequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

	rec = doJSON(t, r, http.MethodGet, "/v1/profile", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileEndpoint_Update(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "qwerty123", "confirm_password": "qwerty123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "qwerty123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[LoginResponse](t, rec).SessionToken

	rec = doJSON(t, r, http.MethodPut, "/v1/profile", token, map[string]string{
		"first_name": "Alice",
		"last_name":  "Smith",
		"phone":      "+61 400 000 000",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	user := decode[UserResponse](t, rec)
	require.NotNil(t, user.FirstName)
	require.Equal(t, "Alice", *user.FirstName)
	require.NotNil(t, user.Phone)
}

func TestEventsEndpoints(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	locID, err := st.Events().CreateLocation(ctx, "Main Hall")
	require.NoError(t, err)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	activeID, err := st.Events().CreateEvent(ctx, domain.Event{
		Title: "GopherCon", StartDate: start, EndDate: start.Add(8 * time.Hour),
		LocationID: locID, Status: domain.EventStatusActive,
	})
	require.NoError(t, err)
	_, err = st.Events().CreateEvent(ctx, domain.Event{
		Title: "Draft", StartDate: start, EndDate: start.Add(time.Hour),
		LocationID: locID, Status: "draft",
	})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/v1/events", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listing := decode[map[string][]EventResponse](t, rec)
	require.Len(t, listing["events"], 1)
	require.Equal(t, activeID, listing["events"][0].EventID)
	require.Equal(t, "Main Hall", listing["events"][0].Location.Name)

	rec = doJSON(t, r, http.MethodGet, "/v1/events/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/events/9999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/events/not-a-number", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r, st := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[map[string]any](t, rec)["status"])

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A closed store makes readiness degrade while liveness stays up.
	require.NoError(t, st.Close())

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", decode[map[string]any](t, rec)["status"])

	rec = doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
