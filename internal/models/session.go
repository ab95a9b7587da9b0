package models

import (
	"time"
)

// Session is a server-side login session. The cookie carries a signed
// token referencing the row by ID; deleting the row terminally
// destroys the session, so a logged-out token can never be replayed.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string { return "sessions" }
