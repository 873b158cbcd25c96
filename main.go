package main

import (
	"os"

	"team-feedback-server/logger"
	"team-feedback-server/routes"
	"team-feedback-server/services"
	"team-feedback-server/storage"
	"team-feedback-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	log := logger.New("team-feedback-server")
	defer log.Sync()

	db := storage.InitializeDB()

	userService := services.NewUserService(db, log)
	teamService := services.NewTeamService(db, log)
	feedbackService := services.NewFeedbackService(db, log)

	userHandler := routes.NewUserHandler(userService)
	teamHandler := routes.NewTeamHandler(teamService, db)
	feedbackHandler := routes.NewFeedbackHandler(feedbackService)
	adminHandler := routes.NewAdminHandler(userService, db)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", userHandler.Register)
		user.Post("/login", userHandler.Login)
	}

	team := app.Party("/api/team")
	{
		team.Post("/", accessTokenVerifierMiddleware, utils.AdminOnly(db), teamHandler.CreateTeam)
		team.Post("/{id:uint}/members", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, teamHandler.AddMember)
		team.Get("/{id:uint}/members", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, teamHandler.ListMembers)
		team.Post("/{id:uint}/feedback", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, feedbackHandler.Submit)
		team.Get("/{id:uint}/feedback-summary", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, feedbackHandler.Summary)
		team.Get("/{id:uint}/detailed-feedback", accessTokenVerifierMiddleware, utils.AdminOnly(db), feedbackHandler.Detailed)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnly(db))
	{
		admin.Get("/users", adminHandler.ListUsers)
		admin.Get("/activity", adminHandler.Activity)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	log.Infow("server starting", "addr", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}
