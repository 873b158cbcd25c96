package routes

import (
	"net/http"

	"team-feedback-server/models"
	"team-feedback-server/services"
	"team-feedback-server/utils"

	"github.com/kataras/iris/v12"
)

type FeedbackHandler struct {
	Feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Feedback: feedback}
}

// Submit handles POST /api/team/{id}/feedback. The reviewer is the
// authenticated principal; the rating range (1-5) is enforced here at the
// input boundary, the ledger itself only checks team membership.
func (h *FeedbackHandler) Submit(ctx iris.Context) {
	teamID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", "invalid team id")
		return
	}

	var input FeedbackCreateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reviewerID := ctx.Values().Get("userID").(uint)
	fb, err := h.Feedback.Submit(teamID, reviewerID, input.RevieweeID, input.Rating, input.Comment)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": fb})
}

// Summary handles GET /api/team/{id}/feedback-summary. Deliberately not
// admin-gated: the projection is anonymous.
func (h *FeedbackHandler) Summary(ctx iris.Context) {
	teamID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", "invalid team id")
		return
	}

	summary, err := h.Feedback.Summary(teamID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"data": summary})
}

// Detailed handles GET /api/team/{id}/detailed-feedback. The route is behind
// the admin guard; the role resolved there is handed to the service, which
// re-asserts it.
func (h *FeedbackHandler) Detailed(ctx iris.Context) {
	teamID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", "invalid team id")
		return
	}

	isAdmin := ctx.Values().GetString("userRole") == models.RoleAdmin
	details, err := h.Feedback.Detailed(teamID, isAdmin)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"data": details})
}

type FeedbackCreateInput struct {
	RevieweeID uint   `json:"reviewee_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"omitempty,max=2000"`
}
