package domain

import (
	"strings"
	"time"
)

// Feedback is a free-text record tagged with a type (e.g. "todo") and an
// optional subject name. Fully mutable and hard-deletable.
type Feedback struct {
	ID           string
	UserID       string
	FeedbackType string
	Feedback     string
	SubjectName  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewFeedback(userID, feedbackType, feedback, subjectName string, now time.Time) (*Feedback, error) {
	userID = strings.TrimSpace(userID)
	feedbackType = strings.TrimSpace(feedbackType)
	feedback = strings.TrimSpace(feedback)

	meta := map[string]string{}
	if userID == "" {
		meta["userId"] = "required"
	}
	if feedbackType == "" {
		meta["feedbackType"] = "required"
	}
	if feedback == "" {
		meta["feedback"] = "required"
	}
	if len(meta) > 0 {
		return nil, ErrValidationMeta("missing required field", meta)
	}

	now = now.UTC()
	return &Feedback{
		UserID:       userID,
		FeedbackType: feedbackType,
		Feedback:     feedback,
		SubjectName:  strings.TrimSpace(subjectName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type FeedbackPatch struct {
	FeedbackType *string
	Feedback     *string
	SubjectName  *string
}

// Apply merges the patch. Required fields may be rewritten but not blanked.
func (f *Feedback) Apply(p FeedbackPatch, now time.Time) error {
	if p.FeedbackType != nil && strings.TrimSpace(*p.FeedbackType) == "" {
		return ErrValidationMeta("missing required field", map[string]string{"feedbackType": "required"})
	}
	if p.Feedback != nil && strings.TrimSpace(*p.Feedback) == "" {
		return ErrValidationMeta("missing required field", map[string]string{"feedback": "required"})
	}

	if p.FeedbackType != nil {
		f.FeedbackType = strings.TrimSpace(*p.FeedbackType)
	}
	if p.Feedback != nil {
		f.Feedback = strings.TrimSpace(*p.Feedback)
	}
	if p.SubjectName != nil {
		f.SubjectName = strings.TrimSpace(*p.SubjectName)
	}
	f.UpdatedAt = now.UTC()
	return nil
}
