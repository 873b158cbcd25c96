package utils

import (
	"encoding/json"
	"net"

	"team-feedback-server/models"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit records an admin-gated mutation with before/after snapshots. Failures
// are swallowed: the audit trail never blocks the request that produced it.
func Audit(db *gorm.DB, ctx iris.Context, action, resourceType string, resourceID uint, before interface{}, after interface{}) {
	var beforeJSON, afterJSON []byte
	if before != nil {
		beforeJSON, _ = json.Marshal(before)
	}
	if after != nil {
		afterJSON, _ = json.Marshal(after)
	}

	var actorID uint
	if tok := jsonWT.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			actorID = at.ID
		}
	}

	entry := models.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   datatypes.JSON(beforeJSON),
		AfterJSON:    datatypes.JSON(afterJSON),
		IPAddress:    clientIP(ctx),
	}
	db.Create(&entry)
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
