package models

import "gorm.io/gorm"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:100;not null"`
	Email    string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Password string `json:"-" gorm:"size:255;not null"`
	Role     string `json:"role" gorm:"type:varchar(10);default:member;index"` // admin, member
}
