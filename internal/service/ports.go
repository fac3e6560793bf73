package service

import (
	"context"
	"time"

	"github.com/scoutlens/tracking-service/internal/domain"
)

type Clock interface{ Now() time.Time }

// Page is offset pagination as the operations expose it. Limit 0 means
// "default"; negative values are rejected by Normalize.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

func (p *Page) Normalize() error {
	if p.Limit < 0 {
		return domain.ErrValidationMeta("invalid pagination", map[string]string{"limit": "must be >= 0"})
	}
	if p.Offset < 0 {
		return domain.ErrValidationMeta("invalid pagination", map[string]string{"offset": "must be >= 0"})
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return nil
}

type SessionFilter struct {
	UserID string
	Active *bool
}

type FeedbackFilter struct {
	UserID       string
	FeedbackType string
	SubjectName  string
}

type InteractionFilter struct {
	UserID          string
	InteractionType string
}

type SummaryFilter struct {
	UserID       string
	SessionToken string
}

// SessionRepo is the Record Store surface for sessions. Mutate runs the given
// closure against the current row inside one transaction (single-row
// read-modify-write), so concurrent end/update calls serialize.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Mutate(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)
	List(ctx context.Context, f SessionFilter, p Page) ([]*domain.Session, int, error)
	CountActive(ctx context.Context, userID string) (int, error)
	IncrementInteractions(ctx context.Context, id string, now time.Time) (*domain.Session, error)
}

type FeedbackRepo interface {
	Create(ctx context.Context, f *domain.Feedback) error
	GetByID(ctx context.Context, id string) (*domain.Feedback, error)
	Mutate(ctx context.Context, id string, fn func(*domain.Feedback) error) (*domain.Feedback, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f FeedbackFilter, p Page) ([]*domain.Feedback, int, error)
}

type InteractionRepo interface {
	Create(ctx context.Context, it *domain.Interaction) error
	GetByID(ctx context.Context, id string) (*domain.Interaction, error)
	ListBySession(ctx context.Context, sessionToken string, f InteractionFilter, p Page) ([]*domain.Interaction, int, error)
	Summarize(ctx context.Context, f SummaryFilter) ([]domain.TypeCount, error)
}
