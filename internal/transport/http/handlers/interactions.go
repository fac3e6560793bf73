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

type InteractionsHandler struct {
	svc *service.InteractionService
}

func NewInteractionsHandler(svc *service.InteractionService) *InteractionsHandler {
	return &InteractionsHandler{svc: svc}
}

// Create appends the interaction. It never touches the owning session's
// interaction count; callers that want the counter bumped follow up with the
// session increment operation.
func (h *InteractionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInteractionReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	it, err := h.svc.Create(r.Context(), service.CreateInteractionCmd{
		SessionToken:    req.SessionToken,
		UserID:          req.UserID,
		InteractionType: req.InteractionType,
		URL:             req.URL,
		ElementInfo:     req.ElementInfo,
		Data:            req.Data,
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	metrics.RecordInteraction(it.InteractionType)
	response.OK(w, "Interaction created successfully", dto.ToInteractionResp(it))
}

func (h *InteractionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "interactionId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"interactionId": "must be uuid",
		}))
		return
	}
	it, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OK(w, "Interaction retrieved successfully", dto.ToInteractionResp(it))
}

// ListBySession serves GET /interactions?sessionToken=... in event-time order.
func (h *InteractionsHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePage(q)
	if err != nil {
		response.Err(w, err)
		return
	}

	items, total, err := h.svc.ListBySession(r.Context(), q.Get("sessionToken"), service.InteractionFilter{
		UserID:          q.Get("userId"),
		InteractionType: q.Get("interactionType"),
	}, page)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OKList(w, "Interactions retrieved successfully", dto.ToInteractionResps(items), total)
}

// Summary groups matching interactions by type; totalCount is the sum of the
// per-type counts.
func (h *InteractionsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sum, err := h.svc.Summarize(r.Context(), service.SummaryFilter{
		UserID:       q.Get("userId"),
		SessionToken: q.Get("sessionToken"),
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OKList(w, "Interaction summary retrieved successfully", dto.ToTypeCountResps(sum.Counts), sum.Total)
}
