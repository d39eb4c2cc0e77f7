package models

import (
	"strings"

	"gorm.io/gorm"
)

// JourneyTrailCap is the maximum number of labels kept in a trail; the
// oldest entries are dropped once exceeded.
const JourneyTrailCap = 15

// JourneyState is the running click summary for one contact inside one
// flow: a slash-joined trail of clicked labels (original casing), a
// click counter and the last label. One row per (business, flow, phone),
// never deleted by the engine.
type JourneyState struct {
	gorm.Model
	BusinessID   uint   `gorm:"not null;uniqueIndex:idx_journey_key" json:"business_id"`
	FlowID       uint   `gorm:"not null;uniqueIndex:idx_journey_key" json:"flow_id"`
	ContactPhone string `gorm:"not null;uniqueIndex:idx_journey_key" json:"contact_phone"`

	Trail      string `gorm:"type:text" json:"trail"`
	ClickCount int    `gorm:"default:0" json:"click_count"`
	LastLabel  string `json:"last_label"`
}

// AppendLabel adds a clicked label to the trail (repeats included),
// bumps the counter and enforces the trail cap.
func (j *JourneyState) AppendLabel(label string) {
	parts := []string{}
	if j.Trail != "" {
		parts = strings.Split(j.Trail, "/")
	}
	parts = append(parts, label)
	if len(parts) > JourneyTrailCap {
		parts = parts[len(parts)-JourneyTrailCap:]
	}
	j.Trail = strings.Join(parts, "/")
	j.ClickCount++
	j.LastLabel = label
}
