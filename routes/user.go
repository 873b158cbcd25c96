package routes

import (
	"net/http"

	"team-feedback-server/services"
	"team-feedback-server/utils"

	"github.com/kataras/iris/v12"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user, err := h.Users.Register(userInput.Name, userInput.Email, userInput.Password, userInput.Role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": user})
}

func (h *UserHandler) Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user, err := h.Users.Authenticate(userInput.Email, userInput.Password)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if user == nil {
		utils.JSONError(ctx, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password.")
		return
	}

	accessToken, tokenErr := utils.CreateAccessToken(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"accessToken": accessToken,
	})
}

type RegisterUserInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,max=120,email"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	Role     string `json:"role" validate:"omitempty,oneof=admin member"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
