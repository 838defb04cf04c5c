package models

import (
	"time"
)

type OrganizationStatus string

const (
	OrganizationStatusActive   OrganizationStatus = "Active"
	OrganizationStatusInactive OrganizationStatus = "Inactive"
	OrganizationStatusBlocked  OrganizationStatus = "Blocked"
)

// Toggled flips between Active and Inactive. Anything that is not Active
// (including Blocked) becomes Active.
func (s OrganizationStatus) Toggled() OrganizationStatus {
	if s == OrganizationStatusActive {
		return OrganizationStatusInactive
	}
	return OrganizationStatusActive
}

type Organization struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Slug         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	OrgEmail     string `gorm:"type:varchar(255);not null" json:"org_email"`
	PhonePrimary string `gorm:"type:varchar(50);not null" json:"phone_primary"`

	PrimaryAdminName  *string `gorm:"type:varchar(255)" json:"primary_admin_name"`
	PrimaryAdminEmail *string `gorm:"type:varchar(255)" json:"primary_admin_email"`
	SupportEmail      *string `gorm:"type:varchar(255)" json:"support_email"`
	PhoneAlt1         *string `gorm:"type:varchar(50)" json:"phone_alt1"`
	PhoneAlt2         *string `gorm:"type:varchar(50)" json:"phone_alt2"`

	MaxCoordinators int     `gorm:"not null;default:0" json:"max_coordinators"`
	Timezone        *string `gorm:"type:varchar(100)" json:"timezone"`
	Region          *string `gorm:"type:varchar(100)" json:"region"`
	Language        *string `gorm:"type:varchar(50)" json:"language"`
	WebsiteURL      *string `gorm:"type:varchar(512)" json:"website_url"`
	LogoURL         *string `gorm:"type:varchar(1024)" json:"logo_url"`

	Status    OrganizationStatus `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	CreatedAt time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relations
	Users []User `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
}
