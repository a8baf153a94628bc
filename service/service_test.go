package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
	"github.com/pavithranrajkumar/devbuddy-backend/dao/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := query.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, userType model.UserType) *model.User {
	t.Helper()
	user := model.User{Email: email, Name: email, UserType: userType}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return &user
}

func createSkill(t *testing.T, db *gorm.DB, name, category string) *model.Skill {
	t.Helper()
	skill := model.Skill{Name: name, Category: category}
	if err := db.Create(&skill).Error; err != nil {
		t.Fatalf("failed to create skill %s: %v", name, err)
	}
	return &skill
}

func giveSkill(t *testing.T, db *gorm.DB, userID, skillID uint) {
	t.Helper()
	us := model.UserSkill{UserID: userID, SkillID: skillID, ProficiencyLevel: model.ProficiencyIntermediate}
	if err := db.Create(&us).Error; err != nil {
		t.Fatalf("failed to assign skill: %v", err)
	}
}

func createProject(t *testing.T, db *gorm.DB, clientID uint, budgetMin, budgetMax float64, status model.ProjectStatus, skills ...model.Skill) *model.Project {
	t.Helper()
	project := model.Project{
		Title:       "Build something great",
		Description: "A project used in tests",
		ClientID:    clientID,
		BudgetMin:   budgetMin,
		BudgetMax:   budgetMax,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
		Status:      status,
		Skills:      skills,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return &project
}

func apply(t *testing.T, svc *ApplicationService, freelancerID, projectID uint, rate float64) *model.ProjectApplication {
	t.Helper()
	app, err := svc.ApplyToProject(context.Background(), freelancerID, projectID, ApplyRequest{
		CoverLetter:       "I am a great fit for this project and here is why.",
		ProposedRate:      rate,
		EstimatedDuration: 14,
	})
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	return app
}
