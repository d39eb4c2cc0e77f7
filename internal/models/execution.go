package models

// ClickEvent is a normalized inbound button click extracted from a
// provider webhook record.
type ClickEvent struct {
	FromPhone   string `json:"from_phone"` // digits only
	Label       string `json:"label"`      // clicked button text, original casing
	ContextID   string `json:"context_id"` // provider id of the original message
	ProfileName string `json:"profile_name,omitempty"`
}

// NextStepContext is one execution request: everything the engine needs
// to move a contact across a matched button link. Transient, never
// persisted.
type NextStepContext struct {
	BusinessID  uint
	FlowID      uint
	FlowVersion int // reserved; flows are versionless, always 1

	SourceStepID uint
	TargetStepID *uint
	ButtonIndex  int
	ButtonLabel  string

	ContactPhone string

	// Sender hint inherited from the click's origin (e.g. campaign);
	// SenderResolver treats it as the first fallback tier.
	Provider string
	SenderID string

	Link            *ButtonLink
	OriginMessageID uint
	RunID           string
}

// NextStepResult is the outcome of one execution request.
type NextStepResult struct {
	Success   bool   `json:"success"`
	ErrorText string `json:"error_text,omitempty"`

	// RedirectURL is set for terminal URL buttons; no send happens.
	RedirectURL string `json:"redirect_url,omitempty"`

	ProviderMessageID string `json:"provider_message_id,omitempty"`
	MessageID         *uint  `json:"message_id,omitempty"`
}

// SendOutcome is what a provider client reports back for one attempt.
type SendOutcome struct {
	Success           bool
	ProviderMessageID string
	ErrorMessage      string
	RawResponse       string
}

// TemplateRequest is the provider-agnostic payload for a template send.
type TemplateRequest struct {
	To           string
	TemplateName string
	Language     string
	BodyParams   []string
	ImageURL     string // set for image-headed templates
}
