package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/tracking-service/internal/service"
)

func newSessionsHandler() (*SessionsHandler, *stubSessionRepo) {
	repo := newStubSessionRepo()
	svc := service.NewSessionService(repo, stubClock{testNow})
	return NewSessionsHandler(svc), repo
}

func TestSessionsHandler_Create(t *testing.T) {
	h, _ := newSessionsHandler()

	t.Run("success_envelope", func(t *testing.T) {
		body := `{"userId":"u1","sessionToken":"tok-1","url":"https://x.com"}`
		req := httptest.NewRequest("POST", "/api/v1/sessions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, true, env["success"])
		assert.Equal(t, "Session created successfully", env["message"])
		data := env["data"].(map[string]any)
		assert.Equal(t, "tok-1", data["sessionToken"])
		assert.Equal(t, true, data["isActive"])
		assert.NotEmpty(t, data["id"])
	})

	t.Run("missing_fields_fail_in_envelope", func(t *testing.T) {
		body := `{"userId":"u1"}`
		req := httptest.NewRequest("POST", "/api/v1/sessions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, false, env["success"])
		assert.Equal(t, "missing required field: sessionToken, url", env["message"])
	})

	t.Run("malformed_json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/sessions", strings.NewReader(`{"userId":`))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, false, env["success"])
		assert.Equal(t, "invalid json body: body", env["message"])
	})
}

func TestSessionsHandler_Get(t *testing.T) {
	h, repo := newSessionsHandler()

	svc := service.NewSessionService(repo, stubClock{testNow})
	created, err := svc.Create(context.Background(), service.CreateSessionCmd{
		UserID: "u1", SessionToken: "tok-1", URL: "https://x.com",
	})
	require.NoError(t, err)

	t.Run("by_id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions/"+created.ID, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("sessionId", created.ID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, true, env["success"])
		assert.Equal(t, created.ID, env["data"].(map[string]any)["id"])
	})

	t.Run("invalid_uuid_fails_validation", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions/not-a-uuid", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("sessionId", "not-a-uuid")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, false, env["success"])
		assert.Equal(t, "invalid path param: sessionId", env["message"])
	})

	t.Run("by_token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions/token/tok-1", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("sessionToken", "tok-1")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()

		h.GetByToken(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, true, env["success"])
		assert.Equal(t, "tok-1", env["data"].(map[string]any)["sessionToken"])
	})

	t.Run("unknown_token_fails_in_envelope", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions/token/nope", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("sessionToken", "nope")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()

		h.GetByToken(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, false, env["success"])
		assert.Equal(t, "session not found", env["message"])
	})
}

func TestSessionsHandler_List(t *testing.T) {
	h, repo := newSessionsHandler()
	svc := service.NewSessionService(repo, stubClock{testNow})
	for _, tok := range []string{"a", "b", "c"} {
		_, err := svc.Create(context.Background(), service.CreateSessionCmd{
			UserID: "u1", SessionToken: tok, URL: "https://x.com",
		})
		require.NoError(t, err)
	}

	t.Run("list_with_total", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions?userId=u1&limit=2", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, true, env["success"])
		assert.Equal(t, float64(3), env["totalCount"])
		assert.Len(t, env["list"], 2)
	})

	t.Run("negative_offset_rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions?offset=-1", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, false, env["success"])
		assert.Equal(t, "invalid pagination: offset", env["message"])
	})

	t.Run("garbage_limit_rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions?limit=abc", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, false, env["success"])
		assert.Equal(t, "invalid query param: limit", env["message"])
	})

	t.Run("active_count", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions/active/count?userId=u1", nil)
		rec := httptest.NewRecorder()

		h.ActiveCount(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, true, env["success"])
		assert.Equal(t, float64(3), env["totalCount"])
		_, hasData := env["data"]
		assert.False(t, hasData)
	})
}

func TestSessionsHandler_EndAndUpdate(t *testing.T) {
	h, repo := newSessionsHandler()
	svc := service.NewSessionService(repo, stubClock{testNow})
	created, err := svc.Create(context.Background(), service.CreateSessionCmd{
		UserID: "u1", SessionToken: "tok-1", URL: "https://x.com",
	})
	require.NoError(t, err)

	t.Run("end_is_idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("POST", "/api/v1/sessions/"+created.ID+"/end", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("sessionId", created.ID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			h.End(rec, req)

			env := envelope(t, rec)
			assert.Equal(t, true, env["success"])
			assert.Equal(t, "Session ended successfully", env["message"])
			data := env["data"].(map[string]any)
			assert.Equal(t, false, data["isActive"])
			assert.Equal(t, float64(0), data["duration"])
		}
	})

	t.Run("reactivation_rejected", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/v1/sessions/"+created.ID, strings.NewReader(`{"isActive":true}`))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("sessionId", created.ID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, false, env["success"])
		assert.Equal(t, "session already ended", env["message"])
	})

	t.Run("increment_interactions", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/sessions/"+created.ID+"/interactions/increment", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("sessionId", created.ID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		rec := httptest.NewRecorder()

		h.IncrementInteractions(rec, req)

		env := envelope(t, rec)
		assert.Equal(t, true, env["success"])
		assert.Equal(t, float64(1), env["data"].(map[string]any)["interactionCount"])
	})
}
