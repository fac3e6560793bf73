package domain

import (
	"strings"
	"time"
)

// Interaction is an immutable event recorded against a session token. The
// token is a logical link only: no foreign key to sessions is enforced.
type Interaction struct {
	ID           string
	SessionToken string
	UserID       string

	InteractionType string
	Timestamp       time.Time
	URL             string

	ElementInfo Document
	Data        Document

	CreatedAt time.Time
}

func NewInteraction(sessionToken, userID, interactionType, url string, elementInfo, data Document, now time.Time) (*Interaction, error) {
	sessionToken = strings.TrimSpace(sessionToken)
	userID = strings.TrimSpace(userID)
	interactionType = strings.TrimSpace(interactionType)

	meta := map[string]string{}
	if sessionToken == "" {
		meta["sessionToken"] = "required"
	}
	if userID == "" {
		meta["userId"] = "required"
	}
	if interactionType == "" {
		meta["interactionType"] = "required"
	}
	if len(meta) > 0 {
		return nil, ErrValidationMeta("missing required field", meta)
	}

	now = now.UTC()
	return &Interaction{
		SessionToken:    sessionToken,
		UserID:          userID,
		InteractionType: interactionType,
		Timestamp:       now,
		URL:             strings.TrimSpace(url),
		ElementInfo:     elementInfo,
		Data:            data,
		CreatedAt:       now,
	}, nil
}

// TypeCount is one row of the interaction summary: how many stored
// interactions carry the given type.
type TypeCount struct {
	InteractionType string
	Count           int
}
