package models

import "gorm.io/gorm"

// Template kind constants
const (
	TemplateKindText  = "text"
	TemplateKindImage = "image"
)

// Button kind constants
const (
	ButtonKindQuickReply = "quick_reply"
	ButtonKindURL        = "url"
)

// FlowDefinition is one business's button-driven messaging flow.
// Created as a draft; publishing is a one-way flag flip. The name is
// unique among the business's active flows (enforced by FlowService).
type FlowDefinition struct {
	gorm.Model
	BusinessID  uint   `gorm:"not null;index" json:"business_id"`
	Name        string `gorm:"not null" json:"name"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	IsPublished bool   `gorm:"default:false" json:"is_published"`

	// Relations
	Steps []FlowStep `gorm:"foreignKey:FlowID" json:"steps,omitempty"`
}

// FlowStep is a node in a flow: the template it sends plus its outgoing
// button links. EntryButtonLabel/Type record which button led into this
// step; they are informational, set by the graph builder.
type FlowStep struct {
	gorm.Model
	FlowID     uint `gorm:"not null;index" json:"flow_id"`
	OrderIndex int  `gorm:"not null" json:"order_index"`

	TemplateName string `json:"template_name"`
	TemplateKind string `gorm:"default:'text'" json:"template_kind"` // text, image

	EntryButtonLabel string `json:"entry_button_label"`
	EntryButtonType  string `json:"entry_button_type"`

	// ProfileSlot is the 1-based body placeholder that receives the
	// contact's display name; nil disables injection.
	ProfileSlot *int `json:"profile_slot"`

	// Eligibility predicate; empty values mean unconditional.
	RequiredTag    string `json:"required_tag"`
	RequiredSource string `json:"required_source"`

	// Relations
	Links []ButtonLink `gorm:"foreignKey:StepID" json:"links,omitempty"`
}

// ButtonLink is a labeled out-edge of a step. ButtonIndex is 0-based and
// unique within the step. A nil NextStepID marks the link terminal (for
// example a URL button): it never triggers an onward send.
type ButtonLink struct {
	gorm.Model
	FlowID uint `gorm:"not null;index" json:"flow_id"`
	StepID uint `gorm:"not null;index" json:"step_id"`

	ButtonIndex int    `gorm:"not null" json:"button_index"`
	Label       string `gorm:"not null" json:"label"`
	Kind        string `gorm:"default:'quick_reply'" json:"kind"` // quick_reply, url
	SubKind     string `json:"sub_kind"`
	Value       string `json:"value"` // URL destination for url buttons

	NextStepID *uint `json:"next_step_id"`
}

// IsTerminal reports whether the link carries no onward send.
func (l *ButtonLink) IsTerminal() bool {
	return l.NextStepID == nil
}
