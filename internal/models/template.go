package models

import "gorm.io/gorm"

// Template status constants (provider vocabulary)
const (
	TemplateStatusApproved = "APPROVED"
	TemplateStatusPending  = "PENDING"
	TemplateStatusRejected = "REJECTED"
)

// TemplateMeta caches provider-side template metadata per business:
// resolved language and how many body placeholders the template expects.
// Rows are synced from the provider outside this engine.
type TemplateMeta struct {
	gorm.Model
	BusinessID uint   `gorm:"not null;index" json:"business_id"`
	Name       string `gorm:"not null;index" json:"name"`

	Language       string `gorm:"default:'en'" json:"language"`
	BodyParamCount int    `gorm:"default:0" json:"body_param_count"`
	Status         string `gorm:"default:'PENDING'" json:"status"`
}

// IsApproved reports whether the template can be sent.
func (t *TemplateMeta) IsApproved() bool {
	return t.Status == TemplateStatusApproved
}
