package models

import "gorm.io/gorm"

// Campaign is the read model for bulk sends that can start a flow: it
// binds the flow clicked replies should enter and remembers which
// provider/sender the blast went out on, so replies stay on the same
// business account. Scheduling and dispatch live outside this engine.
type Campaign struct {
	gorm.Model
	BusinessID uint   `gorm:"not null;index" json:"business_id"`
	Name       string `gorm:"not null" json:"name"`

	FlowID   *uint  `gorm:"index" json:"flow_id"`
	Provider string `json:"provider"`
	SenderID string `json:"sender_id"`
}
