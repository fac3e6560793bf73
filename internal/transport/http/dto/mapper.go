package dto

import "github.com/scoutlens/tracking-service/internal/domain"

func ToSessionResp(s *domain.Session) SessionResp {
	return SessionResp{
		ID:               s.ID,
		UserID:           s.UserID,
		SessionToken:     s.SessionToken,
		URL:              s.URL,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Duration:         s.Duration,
		InteractionCount: s.InteractionCount,
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func ToSessionResps(items []*domain.Session) []SessionResp {
	out := make([]SessionResp, 0, len(items))
	for _, s := range items {
		out = append(out, ToSessionResp(s))
	}
	return out
}

func ToFeedbackResp(f *domain.Feedback) FeedbackResp {
	return FeedbackResp{
		ID:           f.ID,
		UserID:       f.UserID,
		FeedbackType: f.FeedbackType,
		Feedback:     f.Feedback,
		SubjectName:  f.SubjectName,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func ToFeedbackResps(items []*domain.Feedback) []FeedbackResp {
	out := make([]FeedbackResp, 0, len(items))
	for _, f := range items {
		out = append(out, ToFeedbackResp(f))
	}
	return out
}

func ToInteractionResp(it *domain.Interaction) InteractionResp {
	return InteractionResp{
		ID:              it.ID,
		SessionToken:    it.SessionToken,
		UserID:          it.UserID,
		InteractionType: it.InteractionType,
		Timestamp:       it.Timestamp,
		URL:             it.URL,
		ElementInfo:     it.ElementInfo,
		Data:            it.Data,
		CreatedAt:       it.CreatedAt,
	}
}

func ToInteractionResps(items []*domain.Interaction) []InteractionResp {
	out := make([]InteractionResp, 0, len(items))
	for _, it := range items {
		out = append(out, ToInteractionResp(it))
	}
	return out
}

func ToTypeCountResps(items []domain.TypeCount) []TypeCountResp {
	out := make([]TypeCountResp, 0, len(items))
	for _, tc := range items {
		out = append(out, TypeCountResp{InteractionType: tc.InteractionType, Count: tc.Count})
	}
	return out
}
