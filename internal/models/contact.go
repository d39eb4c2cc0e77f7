package models

import (
	"strings"

	"gorm.io/gorm"
)

// Contact is a person who received or answered a business's messages.
type Contact struct {
	gorm.Model
	BusinessID uint   `gorm:"not null;index" json:"business_id"`
	Phone      string `gorm:"not null;index" json:"phone"`

	Name        string `json:"name"`
	ProfileName string `json:"profile_name"` // WhatsApp display name
	Tags        string `json:"tags"`         // comma-separated
	Source      string `json:"source"`       // e.g. "campaign", "import", "organic"
}

// HasTag reports whether the contact carries the given tag.
func (c *Contact) HasTag(tag string) bool {
	if tag == "" {
		return true
	}
	for _, t := range strings.Split(c.Tags, ",") {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// DisplayName picks the best available name for template injection.
func (c *Contact) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.ProfileName != "" {
		return c.ProfileName
	}
	return c.Name
}
