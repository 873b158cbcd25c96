package routes

import (
	"net/http"

	"team-feedback-server/services"
	"team-feedback-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type TeamHandler struct {
	Teams *services.TeamService
	DB    *gorm.DB
}

func NewTeamHandler(teams *services.TeamService, db *gorm.DB) *TeamHandler {
	return &TeamHandler{Teams: teams, DB: db}
}

// CreateTeam handles POST /api/team. Admin-gated by the route middleware.
func (h *TeamHandler) CreateTeam(ctx iris.Context) {
	var input TeamCreateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	creatorID := ctx.Values().Get("userID").(uint)
	team, err := h.Teams.CreateTeam(input.Name, creatorID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.Audit(h.DB, ctx, "team.create", "team", team.ID, nil, team)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": team})
}

// AddMember handles POST /api/team/{id}/members. Any authenticated user may
// add members, not just admins or the team creator; that looseness is the
// documented policy, so tightening it here would be a behavior change.
func (h *TeamHandler) AddMember(ctx iris.Context) {
	teamID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", "invalid team id")
		return
	}

	var input AddMemberInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	member, err := h.Teams.AddMember(teamID, input.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": member})
}

// ListMembers handles GET /api/team/{id}/members.
func (h *TeamHandler) ListMembers(ctx iris.Context) {
	teamID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", "invalid team id")
		return
	}

	members, err := h.Teams.ListMembers(teamID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"data": members})
}

type TeamCreateInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddMemberInput struct {
	UserID uint `json:"user_id" validate:"required"`
}
