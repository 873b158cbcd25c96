package models

import "gorm.io/gorm"

// Feedback is a single rated review of a teammate, scoped to a team.
// Rows are append-only: there is no update or delete path.
type Feedback struct {
	gorm.Model
	TeamID     uint   `json:"teamID" gorm:"not null;index"`
	ReviewerID uint   `json:"reviewerID" gorm:"not null;index"`
	RevieweeID uint   `json:"revieweeID" gorm:"not null;index"`
	Rating     int    `json:"rating" gorm:"not null"`
	Comment    string `json:"comment" gorm:"type:text"`
	Team       Team   `json:"-" gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE"`
	Reviewer   User   `json:"-" gorm:"foreignKey:ReviewerID;references:ID"`
	Reviewee   User   `json:"-" gorm:"foreignKey:RevieweeID;references:ID"`
}
