package models

// ProjectMember links a user to a project with a role and a free-text
// contribution note. A user appears at most once per project.
type ProjectMember struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	ProjectID    uint    `gorm:"not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID       uint    `gorm:"not null;uniqueIndex:idx_project_user" json:"user_id"`
	Role         string  `gorm:"size:50;not null;default:contributor" json:"role"`
	Contribution *string `json:"contribution"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (ProjectMember) TableName() string { return "project_members" }
