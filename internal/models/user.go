package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin       UserRole = "Admin"
	RoleCoordinator UserRole = "Coordinator"
	RoleViewer      UserRole = "Viewer"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

func (s UserStatus) Toggled() UserStatus {
	if s == UserStatusActive {
		return UserStatusInactive
	}
	return UserStatusActive
}

type User struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	FullName       string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role           UserRole   `gorm:"type:varchar(20);not null;default:'Coordinator'" json:"role"`
	PhoneNumber    *string    `gorm:"type:varchar(50)" json:"phone_number"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	OrganizationID uint64     `gorm:"not null;index" json:"organization_id"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
