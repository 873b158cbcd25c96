package routes

import (
	"strings"

	"team-feedback-server/models"
	"team-feedback-server/services"
	"team-feedback-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type AdminHandler struct {
	Users *services.UserService
	DB    *gorm.DB
}

func NewAdminHandler(users *services.UserService, db *gorm.DB) *AdminHandler {
	return &AdminHandler{Users: users, DB: db}
}

// ListUsers - GET /api/admin/users?role=&q=&page=&per_page=
func (h *AdminHandler) ListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	role := strings.TrimSpace(ctx.URLParamDefault("role", ""))
	q := strings.TrimSpace(ctx.URLParamDefault("q", ""))

	users, total, err := h.Users.List(role, q, page, perPage)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// Activity - GET /api/admin/activity?page=&per_page=
func (h *AdminHandler) Activity(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := h.DB.Model(&models.AuditLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var entries []models.AuditLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&entries).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, entries, page, perPage, total)
}
