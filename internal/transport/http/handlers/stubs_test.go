package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/tracking-service/internal/domain"
	"github.com/scoutlens/tracking-service/internal/service"
)

// stubClock keeps handler output stable
type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type stubSessionRepo struct {
	byID map[string]*domain.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byID: map[string]*domain.Session{}}
}

func (m *stubSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	s.ID = uuid.NewString()
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *stubSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("session not found")
	}
	cp := *s
	return &cp, nil
}

func (m *stubSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	for _, s := range m.byID {
		if s.SessionToken == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("session not found")
}

func (m *stubSessionRepo) Mutate(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("session not found")
	}
	cp := *s
	if err := fn(&cp); err != nil {
		return nil, err
	}
	m.byID[id] = &cp
	out := cp
	return &out, nil
}

func (m *stubSessionRepo) List(ctx context.Context, f service.SessionFilter, p service.Page) ([]*domain.Session, int, error) {
	var match []*domain.Session
	for _, s := range m.byID {
		if f.UserID != "" && s.UserID != f.UserID {
			continue
		}
		if f.Active != nil && s.IsActive != *f.Active {
			continue
		}
		cp := *s
		match = append(match, &cp)
	}
	sort.Slice(match, func(i, j int) bool { return match[i].CreatedAt.After(match[j].CreatedAt) })
	total := len(match)
	if p.Offset >= len(match) {
		return nil, total, nil
	}
	match = match[p.Offset:]
	if len(match) > p.Limit {
		match = match[:p.Limit]
	}
	return match, total, nil
}

func (m *stubSessionRepo) CountActive(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, s := range m.byID {
		if s.IsActive && (userID == "" || s.UserID == userID) {
			n++
		}
	}
	return n, nil
}

func (m *stubSessionRepo) IncrementInteractions(ctx context.Context, id string, now time.Time) (*domain.Session, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("session not found")
	}
	s.InteractionCount++
	s.UpdatedAt = now.UTC()
	cp := *s
	return &cp, nil
}

type stubFeedbackRepo struct {
	byID map[string]*domain.Feedback
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{byID: map[string]*domain.Feedback{}}
}

func (m *stubFeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	f.ID = uuid.NewString()
	cp := *f
	m.byID[f.ID] = &cp
	return nil
}

func (m *stubFeedbackRepo) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	f, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("feedback not found")
	}
	cp := *f
	return &cp, nil
}

func (m *stubFeedbackRepo) Mutate(ctx context.Context, id string, fn func(*domain.Feedback) error) (*domain.Feedback, error) {
	f, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("feedback not found")
	}
	cp := *f
	if err := fn(&cp); err != nil {
		return nil, err
	}
	m.byID[id] = &cp
	out := cp
	return &out, nil
}

func (m *stubFeedbackRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *stubFeedbackRepo) List(ctx context.Context, f service.FeedbackFilter, p service.Page) ([]*domain.Feedback, int, error) {
	var match []*domain.Feedback
	for _, fb := range m.byID {
		if f.UserID != "" && fb.UserID != f.UserID {
			continue
		}
		if f.FeedbackType != "" && fb.FeedbackType != f.FeedbackType {
			continue
		}
		if f.SubjectName != "" && fb.SubjectName != f.SubjectName {
			continue
		}
		cp := *fb
		match = append(match, &cp)
	}
	sort.Slice(match, func(i, j int) bool { return match[i].CreatedAt.After(match[j].CreatedAt) })
	total := len(match)
	if p.Offset >= len(match) {
		return nil, total, nil
	}
	match = match[p.Offset:]
	if len(match) > p.Limit {
		match = match[:p.Limit]
	}
	return match, total, nil
}

type stubInteractionRepo struct {
	items []*domain.Interaction
}

func (m *stubInteractionRepo) Create(ctx context.Context, it *domain.Interaction) error {
	it.ID = uuid.NewString()
	cp := *it
	m.items = append(m.items, &cp)
	return nil
}

func (m *stubInteractionRepo) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	for _, it := range m.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("interaction not found")
}

func (m *stubInteractionRepo) ListBySession(ctx context.Context, token string, f service.InteractionFilter, p service.Page) ([]*domain.Interaction, int, error) {
	var match []*domain.Interaction
	for _, it := range m.items {
		if it.SessionToken != token {
			continue
		}
		if f.UserID != "" && it.UserID != f.UserID {
			continue
		}
		if f.InteractionType != "" && it.InteractionType != f.InteractionType {
			continue
		}
		cp := *it
		match = append(match, &cp)
	}
	sort.Slice(match, func(i, j int) bool { return match[i].Timestamp.Before(match[j].Timestamp) })
	total := len(match)
	if p.Offset >= len(match) {
		return nil, total, nil
	}
	match = match[p.Offset:]
	if len(match) > p.Limit {
		match = match[:p.Limit]
	}
	return match, total, nil
}

func (m *stubInteractionRepo) Summarize(ctx context.Context, f service.SummaryFilter) ([]domain.TypeCount, error) {
	byType := map[string]int{}
	for _, it := range m.items {
		if f.UserID != "" && it.UserID != f.UserID {
			continue
		}
		if f.SessionToken != "" && it.SessionToken != f.SessionToken {
			continue
		}
		byType[it.InteractionType]++
	}
	types := make([]string, 0, len(byType))
	for k := range byType {
		types = append(types, k)
	}
	sort.Strings(types)
	out := make([]domain.TypeCount, 0, len(types))
	for _, k := range types {
		out = append(out, domain.TypeCount{InteractionType: k, Count: byType[k]})
	}
	return out, nil
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, 200, rec.Code, "every operation answers 200")
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
