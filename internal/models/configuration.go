package models

import "time"

// Configuration is the business settings singleton
type Configuration struct {
	ID             string    `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessName   string    `bson:"businessName" json:"businessName"`
	InstagramQRURL string    `bson:"instagramQrUrl" json:"instagramQrUrl"`
	ExemptDNIs     []string  `bson:"exemptDnis" json:"exemptDnis"` // DNIs without cooldown
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsExempt reports whether dni bypasses the cooldown
func (c *Configuration) IsExempt(dni string) bool {
	if c == nil {
		return false
	}
	for _, d := range c.ExemptDNIs {
		if d == dni {
			return true
		}
	}
	return false
}

// UpdateConfigRequest is the body of PUT /api/config
type UpdateConfigRequest struct {
	BusinessName   *string  `json:"businessName"`
	InstagramQRURL *string  `json:"instagramQrUrl"`
	ExemptDNIs     []string `json:"exemptDnis"`
}
