package models

import "gorm.io/gorm"

type Team struct {
	gorm.Model
	Name      string `json:"name" gorm:"size:100;not null"`
	CreatedBy uint   `json:"createdBy" gorm:"index"`
	Creator   User   `json:"-" gorm:"foreignKey:CreatedBy;references:ID"`
}

// TeamMember links a user to a team. The composite unique index is what
// guarantees at most one membership row per (team, user) under concurrent
// add-member requests.
type TeamMember struct {
	gorm.Model
	TeamID uint `json:"teamID" gorm:"not null;index;uniqueIndex:idx_team_members_team_user"`
	UserID uint `json:"userID" gorm:"not null;index;uniqueIndex:idx_team_members_team_user"`
	Team   Team `json:"-" gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE"`
	User   User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}
