package utils

import (
	"net/http"

	"team-feedback-server/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// UserIDFromTokenMiddleware extracts the user ID from the verified token and
// stores it in the request context for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	token := jwt.Get(ctx)
	if token == nil {
		ctx.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "unauthorized", "message": "login required"})
		return
	}
	claims, ok := token.(*AccessToken)
	if !ok {
		ctx.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "unauthorized", "message": "invalid token"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// RoleRequired enforces that the authenticated user currently holds one of
// the allowed roles. The role comes from a fresh lookup on every request, not
// from the token, and the check is identical no matter which operation sits
// behind it.
func RoleRequired(db *gorm.DB, allowed ...string) iris.Handler {
	return func(ctx iris.Context) {
		token := jwt.Get(ctx)
		if token == nil {
			ctx.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "unauthorized", "message": "login required"})
			return
		}
		claims, ok := token.(*AccessToken)
		if !ok {
			ctx.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "unauthorized", "message": "invalid token"})
			return
		}

		var user models.User
		if err := db.First(&user, claims.ID).Error; err != nil {
			ctx.StopWithJSON(http.StatusForbidden, iris.Map{"error": "forbidden", "message": "insufficient role"})
			return
		}
		if !slices.Contains(allowed, user.Role) {
			ctx.StopWithJSON(http.StatusForbidden, iris.Map{"error": "forbidden", "message": "insufficient role"})
			return
		}

		ctx.Values().Set("userID", claims.ID)
		ctx.Values().Set("userRole", user.Role)
		ctx.Next()
	}
}

// AdminOnly is the specialization used for team creation and the detailed
// feedback view.
func AdminOnly(db *gorm.DB) iris.Handler {
	return RoleRequired(db, models.RoleAdmin)
}
