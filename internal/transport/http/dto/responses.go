package dto

import "time"

// SessionResp is the stable API response model for sessions.
type SessionResp struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	SessionToken string `json:"sessionToken"`
	URL          string `json:"url"`

	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	// Whole seconds, only set once the session has ended.
	Duration *int `json:"duration,omitempty"`

	InteractionCount int  `json:"interactionCount"`
	IsActive         bool `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FeedbackResp struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	FeedbackType string `json:"feedbackType"`
	Feedback     string `json:"feedback"`
	SubjectName  string `json:"subjectName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type InteractionResp struct {
	ID           string `json:"id"`
	SessionToken string `json:"sessionToken"`
	UserID       string `json:"userId"`

	InteractionType string    `json:"interactionType"`
	Timestamp       time.Time `json:"timestamp"`
	URL             string    `json:"url,omitempty"`

	ElementInfo map[string]any `json:"elementInfo,omitempty"`
	Data        map[string]any `json:"data,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type TypeCountResp struct {
	InteractionType string `json:"interactionType"`
	Count           int    `json:"count"`
}
