package dto

type CreateSessionReq struct {
	UserID       string `json:"userId"`
	SessionToken string `json:"sessionToken"`
	URL          string `json:"url"`
}

// UpdateSessionReq carries only the fields present in the body; nil means
// "leave alone".
type UpdateSessionReq struct {
	URL              *string `json:"url"`
	InteractionCount *int    `json:"interactionCount"`
	IsActive         *bool   `json:"isActive"`
}

type CreateFeedbackReq struct {
	UserID       string `json:"userId"`
	FeedbackType string `json:"feedbackType"`
	Feedback     string `json:"feedback"`
	SubjectName  string `json:"subjectName"`
}

type UpdateFeedbackReq struct {
	FeedbackType *string `json:"feedbackType"`
	Feedback     *string `json:"feedback"`
	SubjectName  *string `json:"subjectName"`
}

type CreateInteractionReq struct {
	SessionToken    string         `json:"sessionToken"`
	UserID          string         `json:"userId"`
	InteractionType string         `json:"interactionType"`
	URL             string         `json:"url"`
	ElementInfo     map[string]any `json:"elementInfo"`
	Data            map[string]any `json:"data"`
}
