package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ActorUserID  uint           `json:"actorUserID" gorm:"index;not null"`
	Action       string         `json:"action" gorm:"size:64;index"`
	ResourceType string         `json:"resourceType" gorm:"size:64;index"`
	ResourceID   uint           `json:"resourceID" gorm:"index"`
	BeforeJSON   datatypes.JSON `json:"beforeJSON"`
	AfterJSON    datatypes.JSON `json:"afterJSON"`
	IPAddress    string         `json:"ipAddress" gorm:"size:64"`
	CreatedAt    time.Time      `json:"createdAt"`
}
