package profile

import (
	"strings"
	"time"

	"github.com/nkripta/nkripta/internal/types"
)

// Profile is a user belonging to exactly one organization. The payment
// processor customer reference is persisted here once created, making
// customer creation idempotent.
type Profile struct {
	ID                string       `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName         string       `json:"firstName,omitempty"`
	MiddleName        string       `json:"middleName,omitempty"`
	LastName          string       `json:"lastName,omitempty"`
	Position          string       `json:"position,omitempty"`
	Email             string       `json:"email" gorm:"not null;uniqueIndex"`
	Phone             string       `json:"phone,omitempty"`
	Mobile            string       `json:"mobile,omitempty"`
	Avatar            string       `json:"avatar,omitempty"`
	PreferredLanguage string       `json:"preferredLanguage,omitempty"`
	Sub               string       `json:"sub,omitempty" gorm:"index"`
	Roles             []types.Role `json:"roles" gorm:"serializer:json"`
	OrganizationID    string       `json:"organizationId" gorm:"type:uuid;not null;index"`
	StripeCustomerID  string       `json:"stripeCustomerId,omitempty" gorm:"index"`
	CreatedAt         time.Time    `json:"createdAt"`
	CreatedBy         string       `json:"createdBy,omitempty" gorm:"type:uuid"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	UpdatedBy         string       `json:"updatedBy,omitempty" gorm:"type:uuid"`
}

func (Profile) TableName() string {
	return "profiles"
}

// FullName joins the non-empty name parts for display and gateway metadata.
func (p *Profile) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// IsAdmin reports whether the profile carries the ADMIN role.
func (p *Profile) IsAdmin() bool {
	return types.HasAdmin(p.Roles)
}
