package service

import (
	"context"
	"strings"

	"github.com/scoutlens/tracking-service/internal/domain"
)

type InteractionService struct {
	repo  InteractionRepo
	clock Clock
}

func NewInteractionService(repo InteractionRepo, clock Clock) *InteractionService {
	return &InteractionService{repo: repo, clock: clock}
}

type CreateInteractionCmd struct {
	SessionToken    string
	UserID          string
	InteractionType string
	URL             string
	ElementInfo     domain.Document
	Data            domain.Document
}

// Create appends one immutable interaction. It does not touch the related
// session's interaction count; that stays with SessionService.
func (s *InteractionService) Create(ctx context.Context, cmd CreateInteractionCmd) (*domain.Interaction, error) {
	it, err := domain.NewInteraction(cmd.SessionToken, cmd.UserID, cmd.InteractionType, cmd.URL, cmd.ElementInfo, cmd.Data, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *InteractionService) GetByID(ctx context.Context, interactionID string) (*domain.Interaction, error) {
	return s.repo.GetByID(ctx, interactionID)
}

// ListBySession returns the session's interactions in chronological replay
// order (event timestamp ascending) plus the filter's total row count.
func (s *InteractionService) ListBySession(ctx context.Context, sessionToken string, f InteractionFilter, p Page) ([]*domain.Interaction, int, error) {
	if strings.TrimSpace(sessionToken) == "" {
		return nil, 0, domain.ErrValidationMeta("missing required field", map[string]string{"sessionToken": "required"})
	}
	if err := p.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.repo.ListBySession(ctx, sessionToken, f, p)
}

// Summarize groups matching interactions by type. Rows come back sorted by
// type ascending; Total is the number of matching interactions.
type Summary struct {
	Counts []domain.TypeCount
	Total  int
}

func (s *InteractionService) Summarize(ctx context.Context, f SummaryFilter) (Summary, error) {
	counts, err := s.repo.Summarize(ctx, f)
	if err != nil {
		return Summary{}, err
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return Summary{Counts: counts, Total: total}, nil
}
