package models

import (
	"time"
)

// Project is a showcase entry. Only published projects are visible to
// anonymous visitors; the slug is the public URL key.
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Slug         string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	ReleaseNotes string    `json:"release_notes"`
	SiteURL      string    `json:"site_url"`
	GithubURL    string    `json:"github_url"`
	Published    bool      `gorm:"not null;default:false" json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Members []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (Project) TableName() string { return "projects" }
