package service

import (
	"context"
	"testing"
	"time"

	"github.com/pavithranrajkumar/devbuddy-backend/apperr"
	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
)

func TestCreateProject_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	client := createUser(t, db, "client@test.co", model.UserTypeClient)
	ctx := context.Background()

	base := CreateProjectRequest{
		Title:       "Website rebuild",
		Description: "Rebuild the marketing site",
		BudgetMin:   500,
		BudgetMax:   1500,
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
	}

	if _, err := svc.Create(ctx, client.ID, base); err != nil {
		t.Fatalf("valid project should be created: %v", err)
	}

	inverted := base
	inverted.BudgetMin, inverted.BudgetMax = 1500, 500
	if _, err := svc.Create(ctx, client.ID, inverted); !apperr.IsBadRequest(err) {
		t.Errorf("inverted budget range: expected BadRequest, got %v", err)
	}

	stale := base
	stale.Deadline = time.Now().Add(-time.Hour)
	if _, err := svc.Create(ctx, client.ID, stale); !apperr.IsBadRequest(err) {
		t.Errorf("past deadline: expected BadRequest, got %v", err)
	}

	unknownSkills := base
	unknownSkills.Skills = []uint{12345}
	if _, err := svc.Create(ctx, client.ID, unknownSkills); !apperr.IsBadRequest(err) {
		t.Errorf("unknown skill ids: expected BadRequest, got %v", err)
	}
}

func TestUpdateProject_BudgetNarrowing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	appSvc := NewApplicationService(db)
	client := createUser(t, db, "client@test.co", model.UserTypeClient)
	freelancer := createUser(t, db, "dev@test.co", model.UserTypeFreelancer)
	ctx := context.Background()

	// Without applications, narrowing is fine.
	empty := createProject(t, db, client.ID, 1000, 2000, model.ProjectPublished)
	lower := 1800.0
	if _, err := svc.Update(ctx, empty.ID, client.ID, UpdateProjectRequest{BudgetMax: &lower}); err != nil {
		t.Errorf("narrowing without applicants should succeed: %v", err)
	}

	// With an application, narrowing either bound fails.
	applied := createProject(t, db, client.ID, 1000, 2000, model.ProjectPublished)
	apply(t, appSvc, freelancer.ID, applied.ID, 1500)
	if _, err := svc.Update(ctx, applied.ID, client.ID, UpdateProjectRequest{BudgetMax: &lower}); !apperr.IsBadRequest(err) {
		t.Errorf("narrowing budgetMax with applicants: expected BadRequest, got %v", err)
	}
	lowerMin := 800.0
	if _, err := svc.Update(ctx, applied.ID, client.ID, UpdateProjectRequest{BudgetMin: &lowerMin}); !apperr.IsBadRequest(err) {
		t.Errorf("lowering budgetMin with applicants: expected BadRequest, got %v", err)
	}
	wider := 3000.0
	if _, err := svc.Update(ctx, applied.ID, client.ID, UpdateProjectRequest{BudgetMax: &wider}); err != nil {
		t.Errorf("widening budgetMax should succeed: %v", err)
	}

	// Foreign client never sees the project.
	stranger := createUser(t, db, "stranger@test.co", model.UserTypeClient)
	if _, err := svc.Update(ctx, applied.ID, stranger.ID, UpdateProjectRequest{}); !apperr.IsNotFound(err) {
		t.Errorf("foreign client: expected NotFound, got %v", err)
	}
}

func TestListProjects_BudgetOverlap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	client := createUser(t, db, "client@test.co", model.UserTypeClient)
	project := createProject(t, db, client.ID, 100, 500, model.ProjectPublished)
	ctx := context.Background()

	overlapping := 400.0
	page, err := svc.List(ctx, ProjectFilters{BudgetMin: &overlapping}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || len(page.Projects) != 1 || page.Projects[0].ID != project.ID {
		t.Errorf("budgetMin=400 should overlap [100,500], got total=%d", page.Total)
	}

	disjoint := 600.0
	page, err = svc.List(ctx, ProjectFilters{BudgetMin: &disjoint}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("budgetMin=600 should not match [100,500], got total=%d", page.Total)
	}
}

func TestListProjects_SearchAndStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	client := createUser(t, db, "client@test.co", model.UserTypeClient)
	ctx := context.Background()

	match := createProject(t, db, client.ID, 100, 500, model.ProjectPublished)
	db.Model(match).Updates(map[string]any{"title": "React Dashboard", "description": "SPA work"})
	other := createProject(t, db, client.ID, 100, 500, model.ProjectPublished)
	db.Model(other).Updates(map[string]any{"title": "Logo design", "description": "Brand identity"})
	closed := createProject(t, db, client.ID, 100, 500, model.ProjectCompleted)
	db.Model(closed).Updates(map[string]any{"title": "React Native app", "description": "done"})

	page, err := svc.List(ctx, ProjectFilters{Search: "react", Status: "published"}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || page.Projects[0].ID != match.ID {
		t.Errorf("case-insensitive search should match one published project, got %d", page.Total)
	}

	// "all" disables the status filter.
	page, err = svc.List(ctx, ProjectFilters{Search: "react", Status: "all"}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 2 {
		t.Errorf(`status "all" should include completed projects, got %d`, page.Total)
	}
}

func TestListProjects_DateWindows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	client := createUser(t, db, "client@test.co", model.UserTypeClient)
	ctx := context.Background()

	old := createProject(t, db, client.ID, 100, 500, model.ProjectPublished)
	db.Model(old).Updates(map[string]any{
		"created_at": time.Now().Add(-10 * 24 * time.Hour),
		"deadline":   time.Now().Add(7 * 24 * time.Hour),
	})
	recent := createProject(t, db, client.ID, 100, 500, model.ProjectPublished)
	db.Model(recent).Update("deadline", time.Now().Add(60*24*time.Hour))

	cutoff := time.Now().Add(-5 * 24 * time.Hour)
	page, err := svc.List(ctx, ProjectFilters{CreatedBefore: &cutoff}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || page.Projects[0].ID != old.ID {
		t.Errorf("createdBefore should match only the old project, got %d", page.Total)
	}

	page, err = svc.List(ctx, ProjectFilters{CreatedAfter: &cutoff}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || page.Projects[0].ID != recent.ID {
		t.Errorf("createdAfter should match only the recent project, got %d", page.Total)
	}

	soon := time.Now().Add(30 * 24 * time.Hour)
	page, err = svc.List(ctx, ProjectFilters{HasDeadlineBefore: &soon}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || page.Projects[0].ID != old.ID {
		t.Errorf("hasDeadlineBefore should match only the near deadline, got %d", page.Total)
	}
}

func TestListProjects_ClientScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	mine := createUser(t, db, "mine@test.co", model.UserTypeClient)
	other := createUser(t, db, "other@test.co", model.UserTypeClient)
	createProject(t, db, mine.ID, 100, 500, model.ProjectPublished)
	createProject(t, db, other.ID, 100, 500, model.ProjectPublished)

	page, err := svc.List(context.Background(), ProjectFilters{}, model.UserTypeClient, mine.ID, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("client should only see own projects, got %d", page.Total)
	}

	page, err = svc.List(context.Background(), ProjectFilters{}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("freelancer should see all projects, got %d", page.Total)
	}
}

func TestListProjects_SkillJoinFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	client := createUser(t, db, "client@test.co", model.UserTypeClient)
	react := createSkill(t, db, "React", "Frontend")
	golang := createSkill(t, db, "Go", "Backend")

	withReact := createProject(t, db, client.ID, 100, 500, model.ProjectPublished, *react)
	createProject(t, db, client.ID, 100, 500, model.ProjectPublished, *golang)
	createProject(t, db, client.ID, 100, 500, model.ProjectPublished)

	page, err := svc.List(context.Background(), ProjectFilters{Skills: []uint{react.ID}}, model.UserTypeFreelancer, 0, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || page.Projects[0].ID != withReact.ID {
		t.Errorf("skill filter should match only the React project, got %d", page.Total)
	}
}

func TestListProjects_SortAndPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db)
	client := createUser(t, db, "client@test.co", model.UserTypeClient)
	createProject(t, db, client.ID, 300, 900, model.ProjectPublished)
	createProject(t, db, client.ID, 100, 500, model.ProjectPublished)
	createProject(t, db, client.ID, 200, 700, model.ProjectPublished)

	page, err := svc.List(context.Background(),
		ProjectFilters{SortBy: "budgetMin", SortOrder: "asc"},
		model.UserTypeFreelancer, 0, 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || len(page.Projects) != 2 {
		t.Errorf("unexpected pagination: total=%d totalPages=%d len=%d", page.Total, page.TotalPages, len(page.Projects))
	}
	if page.Projects[0].BudgetMin != 100 || page.Projects[1].BudgetMin != 200 {
		t.Errorf("expected ascending budgetMin order, got %v then %v", page.Projects[0].BudgetMin, page.Projects[1].BudgetMin)
	}

	// Unknown sort fields fall back to created_at instead of reaching SQL.
	if _, err := svc.List(context.Background(),
		ProjectFilters{SortBy: "evil; DROP TABLE projects"},
		model.UserTypeFreelancer, 0, 1, 10); err != nil {
		t.Errorf("unknown sort field should not error: %v", err)
	}
}
