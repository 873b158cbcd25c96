package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"team-feedback-server/models"
	"team-feedback-server/services"
	"team-feedback-server/utils"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// buildTestApp wires the full route surface against an in-memory database,
// mirroring the wiring in main.
func buildTestApp(t *testing.T) (*iris.Application, *gorm.DB) {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Feedback{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	log := zap.NewNop().Sugar()
	userService := services.NewUserService(db, log)
	teamService := services.NewTeamService(db, log)
	feedbackService := services.NewFeedbackService(db, log)

	userHandler := NewUserHandler(userService)
	teamHandler := NewTeamHandler(teamService, db)
	feedbackHandler := NewFeedbackHandler(feedbackService)
	adminHandler := NewAdminHandler(userService, db)

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
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

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app, db
}

func doJSON(t *testing.T, app *iris.Application, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func registerUser(t *testing.T, app *iris.Application, name, email, password, role string) models.User {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/user/register", "", iris.Map{
		"name": name, "email": email, "password": password, "role": role,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, resp.Code, resp.Body.String())
	}
	var out struct {
		Data models.User `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return out.Data
}

func loginUser(t *testing.T, app *iris.Application, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/user/login", "", iris.Map{
		"email": email, "password": password,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, resp.Code, resp.Body.String())
	}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.AccessToken == "" {
		t.Fatal("login returned empty access token")
	}
	return out.AccessToken
}
