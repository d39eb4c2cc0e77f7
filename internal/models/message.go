package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// OutboundMessage records one send attempt to a contact, successful or
// not. FlowID/StepID are set for flow-originated sends, CampaignID for
// campaign blasts; a later click on this message is attributed through
// ProviderMessageID.
type OutboundMessage struct {
	gorm.Model
	BusinessID   uint   `gorm:"not null;index" json:"business_id"`
	ContactPhone string `gorm:"not null;index" json:"contact_phone"`

	Provider string `json:"provider"`  // meta, twilio
	SenderID string `json:"sender_id"` // phone number id / twilio number

	ProviderMessageID string `gorm:"index" json:"provider_message_id"`
	TemplateName      string `json:"template_name"`

	FlowID     *uint `gorm:"index" json:"flow_id"`
	StepID     *uint `json:"step_id"`
	CampaignID *uint `gorm:"index" json:"campaign_id"`

	// RunID correlates every message and log entry of one click chain.
	RunID string `gorm:"index" json:"run_id"`

	Success     bool   `json:"success"`
	ErrorText   string `json:"error_text"`
	RawResponse string `gorm:"type:text" json:"raw_response"`

	// ButtonsJSON is the button bundle: the exact buttons shown on this
	// message, snapshotted at send time so a click can still be matched
	// after the graph changes.
	ButtonsJSON string `gorm:"type:text" json:"buttons_json"`
}

// ButtonSnapshot is one entry of a message's button bundle.
type ButtonSnapshot struct {
	Index      int    `json:"index"`
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Value      string `json:"value,omitempty"`
	NextStepID *uint  `json:"next_step_id,omitempty"`
}

// SnapshotButtons serializes a step's current links into a bundle.
func SnapshotButtons(links []ButtonLink) string {
	snaps := make([]ButtonSnapshot, 0, len(links))
	for _, l := range links {
		snaps = append(snaps, ButtonSnapshot{
			Index:      l.ButtonIndex,
			Label:      l.Label,
			Kind:       l.Kind,
			Value:      l.Value,
			NextStepID: l.NextStepID,
		})
	}
	data, err := json.Marshal(snaps)
	if err != nil {
		return ""
	}
	return string(data)
}

// ParseButtons decodes a message's button bundle. An empty or malformed
// bundle yields nil; callers fall through to live graph matching.
func ParseButtons(raw string) []ButtonSnapshot {
	if raw == "" {
		return nil
	}
	var snaps []ButtonSnapshot
	if err := json.Unmarshal([]byte(raw), &snaps); err != nil {
		return nil
	}
	return snaps
}
