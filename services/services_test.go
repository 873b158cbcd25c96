package services

import (
	"testing"

	"team-feedback-server/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with the production schema.
// The pool is pinned to a single connection so every goroutine sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func mustCreateUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return &user
}

func mustCreateTeam(t *testing.T, db *gorm.DB, name string, creatorID uint) *models.Team {
	t.Helper()
	team := models.Team{Name: name, CreatedBy: creatorID}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return &team
}

func mustAddMember(t *testing.T, db *gorm.DB, teamID, userID uint) {
	t.Helper()
	if err := db.Create(&models.TeamMember{TeamID: teamID, UserID: userID}).Error; err != nil {
		t.Fatalf("add member %d to team %d: %v", userID, teamID, err)
	}
}
