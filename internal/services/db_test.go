package services

import (
	"testing"

	"github.com/collabconnect/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database, migrated and ready.
// The DSN is keyed by test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedUser inserts a user with the given credit score and returns it.
func seedUser(t *testing.T, db *gorm.DB, username string, credits int) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		Email:       username + "@test.local",
		Password:    "x",
		Role:        "user",
		AuthType:    "local",
		CreditScore: credits,
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

// seedProject creates a project through the project service so the owner
// collaborator, collabed row and chat are all in place.
func seedProject(t *testing.T, db *gorm.DB, owner *models.User, perHeadCredits int) *models.Project {
	t.Helper()

	project, err := NewProjectService(db).Create(&CreateProjectRequest{
		Title:          "Test Project " + owner.Username,
		Description:    "a project for testing",
		Tags:           []string{"go", "testing"},
		PerHeadCredits: perHeadCredits,
	}, owner.ID)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}
