package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scoutlens/tracking-service/internal/domain"
	"github.com/scoutlens/tracking-service/internal/metrics"
	"github.com/scoutlens/tracking-service/internal/service"
	"github.com/scoutlens/tracking-service/internal/transport/http/dto"
	"github.com/scoutlens/tracking-service/internal/transport/http/response"
	"github.com/scoutlens/tracking-service/internal/transport/http/validate"
)

type SessionsHandler struct {
	svc *service.SessionService
}

func NewSessionsHandler(svc *service.SessionService) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	sess, err := h.svc.Create(r.Context(), service.CreateSessionCmd{
		UserID:       req.UserID,
		SessionToken: req.SessionToken,
		URL:          req.URL,
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	metrics.RecordSessionStarted()
	response.OK(w, "Session created successfully", dto.ToSessionResp(sess))
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"sessionId": "must be uuid",
		}))
		return
	}
	sess, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OK(w, "Session retrieved successfully", dto.ToSessionResp(sess))
}

// GetByToken looks a session up by its client-chosen token. Tokens are opaque
// strings, not uuids.
func (h *SessionsHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "sessionToken")
	sess, err := h.svc.GetByToken(r.Context(), token)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OK(w, "Session retrieved successfully", dto.ToSessionResp(sess))
}

func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePage(q)
	if err != nil {
		response.Err(w, err)
		return
	}
	active, err := parseBool(q, "isActive")
	if err != nil {
		response.Err(w, err)
		return
	}

	items, total, err := h.svc.List(r.Context(), service.SessionFilter{
		UserID: q.Get("userId"),
		Active: active,
	}, page)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OKList(w, "Sessions retrieved successfully", dto.ToSessionResps(items), total)
}

func (h *SessionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"sessionId": "must be uuid",
		}))
		return
	}

	var req dto.UpdateSessionReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	sess, err := h.svc.Update(r.Context(), service.UpdateSessionCmd{
		SessionID: id,
		Patch: domain.SessionPatch{
			URL:              req.URL,
			InteractionCount: req.InteractionCount,
			IsActive:         req.IsActive,
		},
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OK(w, "Session updated successfully", dto.ToSessionResp(sess))
}

func (h *SessionsHandler) End(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"sessionId": "must be uuid",
		}))
		return
	}
	sess, err := h.svc.End(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	metrics.RecordSessionEnded()
	response.OK(w, "Session ended successfully", dto.ToSessionResp(sess))
}

func (h *SessionsHandler) IncrementInteractions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"sessionId": "must be uuid",
		}))
		return
	}
	sess, err := h.svc.IncrementInteractions(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OK(w, "Interaction count updated successfully", dto.ToSessionResp(sess))
}

func (h *SessionsHandler) ActiveCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountActive(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OKTotal(w, "Active sessions counted successfully", n)
}
