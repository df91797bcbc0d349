package organization

import (
	"regexp"
	"strings"
	"time"
)

// Organization is the tenant entity. Profiles belong to exactly one
// organization; subscriptions are scoped to the owning profile's
// organization.
type Organization struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Slug        string    `json:"slug" gorm:"size:100;not null;uniqueIndex"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty" gorm:"size:255"`
	Phone       string    `json:"phone,omitempty" gorm:"size:15"`
	Email       string    `json:"email,omitempty" gorm:"size:100"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy,omitempty" gorm:"type:uuid"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedBy   string    `json:"updatedBy,omitempty" gorm:"type:uuid"`
}

func (Organization) TableName() string {
	return "organizations"
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SlugFromName derives the URL-safe slug deterministically from a name.
func SlugFromName(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
