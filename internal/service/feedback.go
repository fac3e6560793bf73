package service

import (
	"context"
	"strings"

	"github.com/scoutlens/tracking-service/internal/domain"
)

type FeedbackService struct {
	repo  FeedbackRepo
	clock Clock
}

func NewFeedbackService(repo FeedbackRepo, clock Clock) *FeedbackService {
	return &FeedbackService{repo: repo, clock: clock}
}

type CreateFeedbackCmd struct {
	UserID       string
	FeedbackType string
	Feedback     string
	SubjectName  string
}

func (s *FeedbackService) Create(ctx context.Context, cmd CreateFeedbackCmd) (*domain.Feedback, error) {
	fb, err := domain.NewFeedback(cmd.UserID, cmd.FeedbackType, cmd.Feedback, cmd.SubjectName, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

type UpdateFeedbackCmd struct {
	FeedbackID string
	Patch      domain.FeedbackPatch
}

func (s *FeedbackService) Update(ctx context.Context, cmd UpdateFeedbackCmd) (*domain.Feedback, error) {
	if strings.TrimSpace(cmd.FeedbackID) == "" {
		return nil, domain.ErrValidationMeta("missing required field", map[string]string{"feedbackId": "required"})
	}
	now := s.clock.Now()
	return s.repo.Mutate(ctx, cmd.FeedbackID, func(fb *domain.Feedback) error {
		return fb.Apply(cmd.Patch, now)
	})
}

// Delete hard-deletes. A missing record reports found=false rather than an
// error: deletion of an absent record is an envelope-level failure, not a
// fault.
func (s *FeedbackService) Delete(ctx context.Context, feedbackID string) (bool, error) {
	if strings.TrimSpace(feedbackID) == "" {
		return false, domain.ErrValidationMeta("missing required field", map[string]string{"feedbackId": "required"})
	}
	return s.repo.Delete(ctx, feedbackID)
}

func (s *FeedbackService) GetByID(ctx context.Context, feedbackID string) (*domain.Feedback, error) {
	return s.repo.GetByID(ctx, feedbackID)
}

func (s *FeedbackService) List(ctx context.Context, f FeedbackFilter, p Page) ([]*domain.Feedback, int, error) {
	if err := p.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, f, p)
}
