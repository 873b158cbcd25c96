package routes

import (
	"errors"
	"net/http"

	"team-feedback-server/services"
	"team-feedback-server/utils"

	"github.com/kataras/iris/v12"
)

// handleServiceError maps the typed domain failures to client statuses.
// Anything unrecognized is a storage or programming error and is reported as
// a generic 500.
func handleServiceError(ctx iris.Context, err error) {
	var notMember *services.NotTeamMemberError

	switch {
	case errors.Is(err, services.ErrEmailTaken):
		utils.JSONError(ctx, http.StatusConflict, "email_taken", services.ErrEmailTaken.Error())
	case errors.Is(err, services.ErrTeamNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", services.ErrTeamNotFound.Error())
	case errors.Is(err, services.ErrUserNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", services.ErrUserNotFound.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		utils.JSONError(ctx, http.StatusConflict, "already_member", services.ErrAlreadyMember.Error())
	case errors.As(err, &notMember):
		utils.JSONError(ctx, http.StatusBadRequest, "not_team_member", notMember.Error())
	case errors.Is(err, services.ErrAdminRequired):
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", services.ErrAdminRequired.Error())
	default:
		utils.CreateInternalServerError(ctx)
	}
}
