package models

import "gorm.io/gorm"

// Execution log levels
const (
	LogLevelClick = "click"
	LogLevelSend  = "send"
)

// ExecutionLogEntry is one append-only audit fact: either a matched
// click or a send attempt. Entries are never mutated after insert.
type ExecutionLogEntry struct {
	gorm.Model
	BusinessID uint `gorm:"not null;index" json:"business_id"`
	FlowID     uint `gorm:"index" json:"flow_id"`
	StepID     uint `json:"step_id"`

	ButtonIndex int    `json:"button_index"`
	ButtonLabel string `json:"button_label"`

	Level        string `gorm:"not null;default:'click'" json:"level"` // click, send
	TemplateName string `json:"template_name"`

	Success     bool   `json:"success"`
	ErrorText   string `json:"error_text"`
	RawResponse string `gorm:"type:text" json:"raw_response"`

	// OriginMessageID is the outbound message whose button was clicked;
	// MessageID is the new send this entry tracks, when one was made.
	OriginMessageID uint  `gorm:"index" json:"origin_message_id"`
	MessageID       *uint `json:"message_id"`

	RunID string `gorm:"index" json:"run_id"`
}
