package models

import "gorm.io/gorm"

// Provider identifiers
const (
	ProviderMeta   = "meta"
	ProviderTwilio = "twilio"
)

// IsKnownProvider reports whether the identifier is one of the two
// recognized providers.
func IsKnownProvider(p string) bool {
	return p == ProviderMeta || p == ProviderTwilio
}

// BusinessSettings is a business's active defaults row. Sender
// resolution falls back to DefaultProvider when an execution request
// carries no usable provider of its own.
type BusinessSettings struct {
	gorm.Model
	BusinessID      uint   `gorm:"not null;index" json:"business_id"`
	DefaultProvider string `json:"default_provider"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`
}

// WabaAccount is one sending identity: the (provider, number) pair used
// to dispatch outbound messages for a business.
type WabaAccount struct {
	gorm.Model
	BusinessID uint   `gorm:"not null;index" json:"business_id"`
	Provider   string `gorm:"not null" json:"provider"`

	PhoneNumberID string `gorm:"not null" json:"phone_number_id"`
	AccessToken   string `json:"-"`
	ApiVersion    string `gorm:"default:'v19.0'" json:"api_version"`

	IsDefault bool `gorm:"default:false" json:"is_default"`
	IsActive  bool `gorm:"default:true" json:"is_active"`
}
