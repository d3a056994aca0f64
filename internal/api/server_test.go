package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcortes/volunteer-hub/internal/auth"
	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/match"
)

func newTestServer(t *testing.T, store *fakeStore) *Server {
	t.Helper()
	authService, err := auth.NewService(store, "test-secret")
	require.NoError(t, err)
	return NewServer(store, authService, match.DefaultWeights(), zap.NewNop())
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echoContentType, echoJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSON        = "application/json"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "volunteer-hub", body["service"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestUnknownPathReturns404WithRoutes(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodGet, "/api/unknown-path", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["error"])

	routes, ok := body["availableRoutes"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, routes)
	assert.Contains(t, routes, "GET /api/health")
	assert.Contains(t, routes, "POST /api/volunteer-matches")
}

func TestWrongMethodReturns404(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodDelete, "/api/login", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestEveryTableRouteDispatches(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	// Any listed route must reach its handler, i.e. never produce the
	// route-not-found payload.
	for _, r := range s.routeTable() {
		path := r.path
		path = strings.ReplaceAll(path, ":userId", "1")
		path = strings.ReplaceAll(path, ":eventId", "1")
		path = strings.ReplaceAll(path, ":id", "1")

		rec := doRequest(s, r.method, path, "{}")

		var body interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		if m, ok := body.(map[string]interface{}); ok {
			assert.NotEqual(t, "Route not found", m["error"],
				"%s %s fell through to the 404 handler", r.method, r.path)
		}
	}
}

func TestStatusRouteNotShadowedByIDRoute(t *testing.T) {
	store := newFakeStore()
	store.addEvent(modelEvent(1, "Coastal Cleanup", "draft"))
	s := newTestServer(t, store)

	rec := doRequest(s, http.MethodPut, "/api/events/1/status", `{"Status":"published"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	event := body["event"].(map[string]interface{})
	assert.Equal(t, "published", event["status"])
}

func TestLoginAgainstEmptyStore(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestLoginStoreFailureIsServerError(t *testing.T) {
	store := newFakeStore()
	store.userLookupErr = errors.New("connection refused")
	s := newTestServer(t, store)

	rec := doRequest(s, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"123"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["error"])
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodPost, "/api/register", `{"email":"a@b.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	rec = doRequest(s, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginValidation(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodPost, "/api/login", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBodyIsServerError(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodPost, "/api/login", `{"email": truncated`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Server error", body["error"])
}

func TestStatesReturnsBareArray(t *testing.T) {
	store := newFakeStore()
	store.states = []db.State{{Code: "TX", Name: "Texas"}}
	s := newTestServer(t, store)

	rec := doRequest(s, http.MethodGet, "/api/states", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var states []db.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
	require.Len(t, states, 1)
	assert.Equal(t, "TX", states[0].Code)
}

func TestProfileNotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, http.MethodGet, "/api/profile/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Profile not found", body["error"])
}

func TestUpdateProfileResolvesUserFromToken(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)

	rec := doRequest(s, http.MethodPost, "/api/register", `{"email":"a@b.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	token := decodeBody(t, rec)["token"].(string)

	req := httptest.NewRequest(http.MethodPut, "/api/profile",
		strings.NewReader(`{"FullName":"Dana Cortes","State":"TX","Skills":["Cooking"]}`))
	req.Header.Set(echoContentType, echoJSON)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Echo.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.profiles, 1)
	profile, ok := store.profiles[1]
	require.True(t, ok)
	assert.Equal(t, "Dana Cortes", profile.FullName)
}

func TestEventLifecycleRejectsIllegalJump(t *testing.T) {
	store := newFakeStore()
	store.addEvent(modelEvent(1, "Coastal Cleanup", "draft"))
	s := newTestServer(t, store)

	rec := doRequest(s, http.MethodPut, "/api/events/1/status", `{"Status":"completed"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
