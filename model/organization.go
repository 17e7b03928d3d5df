package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultOrganizationID is the fixed identity of the seed organization. Every
// environment provisioned by taskhub-setup converges on this one record, so
// the value must never change between releases.
var DefaultOrganizationID = uuid.MustParse("b5f1d9c2-3e47-4b7a-9f10-8c2d54a1e9b3")

type Organization struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name         string    `json:"name"`
	ShortCode    string    `json:"shortCode"`
	Description  string    `json:"description"`
	ContactEmail string    `json:"contactEmail"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultOrganization returns the record taskhub-setup seeds when no active
// organization exists yet.
func DefaultOrganization() Organization {
	return Organization{
		ID:           DefaultOrganizationID,
		Name:         "Taskhub",
		ShortCode:    "HQ",
		Description:  "Default organization created by taskhub-setup",
		ContactEmail: "admin@taskhub.local",
		Phone:        "+1-555-0100",
		Address:      "100 Main St",
		Active:       true,
	}
}
