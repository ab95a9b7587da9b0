package models

import (
	"time"
)

// InviteCode is a single-use registration token. Once used it stays
// used; consumption is recorded against the registering user.
type InviteCode struct {
	Code      string     `gorm:"primaryKey;size:64" json:"code"`
	CreatedBy uint       `gorm:"index" json:"created_by"`
	Used      bool       `gorm:"not null;default:false" json:"used"`
	UsedBy    *uint      `json:"used_by"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at"`

	// Relationships
	Creator User `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (InviteCode) TableName() string { return "codes" }
