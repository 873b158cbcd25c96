package storage

import (
	"log"
	"os"

	"team-feedback-server/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func connectToDB() *gorm.DB {
	// Only load .env in development
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Feedback{},
		&models.AuditLog{},
	)
}

// InitializeDB opens the database and runs migrations. The handle is returned
// rather than stored in a package variable so every consumer receives it
// explicitly.
func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
