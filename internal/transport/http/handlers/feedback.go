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

type FeedbackHandler struct {
	svc *service.FeedbackService
}

func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	fb, err := h.svc.Create(r.Context(), service.CreateFeedbackCmd{
		UserID:       req.UserID,
		FeedbackType: req.FeedbackType,
		Feedback:     req.Feedback,
		SubjectName:  req.SubjectName,
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	metrics.RecordFeedbackSubmitted()
	response.OK(w, "Feedback created successfully", dto.ToFeedbackResp(fb))
}

func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "feedbackId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"feedbackId": "must be uuid",
		}))
		return
	}
	fb, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OK(w, "Feedback retrieved successfully", dto.ToFeedbackResp(fb))
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePage(q)
	if err != nil {
		response.Err(w, err)
		return
	}

	items, total, err := h.svc.List(r.Context(), service.FeedbackFilter{
		UserID:       q.Get("userId"),
		FeedbackType: q.Get("feedbackType"),
		SubjectName:  q.Get("subjectName"),
	}, page)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OKList(w, "Feedback retrieved successfully", dto.ToFeedbackResps(items), total)
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "feedbackId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"feedbackId": "must be uuid",
		}))
		return
	}

	var req dto.UpdateFeedbackReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	fb, err := h.svc.Update(r.Context(), service.UpdateFeedbackCmd{
		FeedbackID: id,
		Patch: domain.FeedbackPatch{
			FeedbackType: req.FeedbackType,
			Feedback:     req.Feedback,
			SubjectName:  req.SubjectName,
		},
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	response.OK(w, "Feedback updated successfully", dto.ToFeedbackResp(fb))
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "feedbackId")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"feedbackId": "must be uuid",
		}))
		return
	}
	found, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	if !found {
		response.Fail(w, "Feedback not found")
		return
	}
	response.OK(w, "Feedback deleted successfully", nil)
}
