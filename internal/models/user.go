package models

import (
	"time"
)

const (
	RoleOwner  = "owner"
	RoleFriend = "friend"
)

// User is a registered account. Friends self-register through invite
// codes; the owner account comes from the bootstrap upsert.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:friend" json:"role"`
	Name         *string   `json:"name"`
	Bio          *string   `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Memberships []ProjectMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }
