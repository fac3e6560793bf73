package service

import (
	"context"
	"strings"

	"github.com/scoutlens/tracking-service/internal/domain"
)

type SessionService struct {
	repo  SessionRepo
	clock Clock
}

func NewSessionService(repo SessionRepo, clock Clock) *SessionService {
	return &SessionService{repo: repo, clock: clock}
}

type CreateSessionCmd struct {
	UserID       string
	SessionToken string
	URL          string
}

func (s *SessionService) Create(ctx context.Context, cmd CreateSessionCmd) (*domain.Session, error) {
	sess, err := domain.NewSession(cmd.UserID, cmd.SessionToken, cmd.URL, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// End closes the session. Ending an already-ended session returns it
// unchanged (idempotent).
func (s *SessionService) End(ctx context.Context, sessionID string) (*domain.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.ErrValidationMeta("missing required field", map[string]string{"sessionId": "required"})
	}
	now := s.clock.Now()
	return s.repo.Mutate(ctx, sessionID, func(sess *domain.Session) error {
		sess.End(now)
		return nil
	})
}

type UpdateSessionCmd struct {
	SessionID string
	Patch     domain.SessionPatch
}

func (s *SessionService) Update(ctx context.Context, cmd UpdateSessionCmd) (*domain.Session, error) {
	if strings.TrimSpace(cmd.SessionID) == "" {
		return nil, domain.ErrValidationMeta("missing required field", map[string]string{"sessionId": "required"})
	}
	now := s.clock.Now()
	return s.repo.Mutate(ctx, cmd.SessionID, func(sess *domain.Session) error {
		return sess.Apply(cmd.Patch, now)
	})
}

func (s *SessionService) GetByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.repo.GetByID(ctx, sessionID)
}

func (s *SessionService) GetByToken(ctx context.Context, sessionToken string) (*domain.Session, error) {
	if strings.TrimSpace(sessionToken) == "" {
		return nil, domain.ErrValidationMeta("missing required field", map[string]string{"sessionToken": "required"})
	}
	return s.repo.GetByToken(ctx, sessionToken)
}

func (s *SessionService) List(ctx context.Context, f SessionFilter, p Page) ([]*domain.Session, int, error) {
	if err := p.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, f, p)
}

func (s *SessionService) CountActive(ctx context.Context, userID string) (int, error) {
	return s.repo.CountActive(ctx, userID)
}

// IncrementInteractions bumps the interaction count by one in a single store
// round-trip. This is the counterpart of createUserInteraction: the two
// services stay decoupled, the caller wires them together.
func (s *SessionService) IncrementInteractions(ctx context.Context, sessionID string) (*domain.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.ErrValidationMeta("missing required field", map[string]string{"sessionId": "required"})
	}
	return s.repo.IncrementInteractions(ctx, sessionID, s.clock.Now())
}
