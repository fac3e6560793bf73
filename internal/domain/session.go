package domain

import (
	"strings"
	"time"
)

// Session is a tracked browsing session. Invariants:
//   - EndTime is set exactly when IsActive is false
//   - Duration = EndTime - StartTime in whole seconds, only once ended
//   - InteractionCount never decreases
type Session struct {
	ID           string
	UserID       string
	SessionToken string
	URL          string

	StartTime time.Time
	EndTime   *time.Time
	Duration  *int

	InteractionCount int
	IsActive         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) Ended() bool { return s.EndTime != nil }

// NewSession builds an active session starting now.
func NewSession(userID, sessionToken, url string, now time.Time) (*Session, error) {
	userID = strings.TrimSpace(userID)
	sessionToken = strings.TrimSpace(sessionToken)
	url = strings.TrimSpace(url)

	meta := map[string]string{}
	if userID == "" {
		meta["userId"] = "required"
	}
	if sessionToken == "" {
		meta["sessionToken"] = "required"
	}
	if url == "" {
		meta["url"] = "required"
	}
	if len(meta) > 0 {
		return nil, ErrValidationMeta("missing required field", meta)
	}

	now = now.UTC()
	return &Session{
		UserID:           userID,
		SessionToken:     sessionToken,
		URL:              url,
		StartTime:        now,
		InteractionCount: 0,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// End closes the session. Ending an already-ended session is a no-op: the
// stored end time and duration are kept as-is.
func (s *Session) End(now time.Time) {
	if s.Ended() {
		return
	}
	end := now.UTC()
	d := int(end.Sub(s.StartTime).Seconds())
	if d < 0 {
		d = 0
	}
	s.EndTime = &end
	s.Duration = &d
	s.IsActive = false
	s.UpdatedAt = end
}

// SessionPatch carries the fields updateSession may change. Nil means
// "leave unchanged".
type SessionPatch struct {
	URL              *string
	InteractionCount *int
	IsActive         *bool
}

// Apply merges the patch. Lowering the interaction count is rejected, and so
// is reactivating an ended session (Ended is terminal). Setting IsActive to
// false is equivalent to End.
func (s *Session) Apply(p SessionPatch, now time.Time) error {
	if p.InteractionCount != nil && *p.InteractionCount < s.InteractionCount {
		return ErrValidationMeta("interaction count cannot decrease", map[string]string{
			"interactionCount": "must be >= current value",
		})
	}
	if p.IsActive != nil && *p.IsActive && s.Ended() {
		return ErrValidation("session already ended")
	}

	if p.URL != nil {
		s.URL = strings.TrimSpace(*p.URL)
	}
	if p.InteractionCount != nil {
		s.InteractionCount = *p.InteractionCount
	}
	s.UpdatedAt = now.UTC()

	if p.IsActive != nil && !*p.IsActive {
		s.End(now)
	}
	return nil
}
