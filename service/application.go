package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pavithranrajkumar/devbuddy-backend/apperr"
	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
	"github.com/pavithranrajkumar/devbuddy-backend/response"
)

// ApplicationService owns the application status state machine and the
// acceptance side effects.
type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// lockForUpdate takes a row lock on dialects that support it. sqlite
// serializes writers on its own, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

type ApplyRequest struct {
	CoverLetter       string  `json:"coverLetter" binding:"required"`
	ProposedRate      float64 `json:"proposedRate" binding:"required,gt=0"`
	EstimatedDuration int     `json:"estimatedDuration" binding:"required,gt=0"`
}

// ApplyToProject creates an application with status applied and bumps the
// project's applicants counter. The existence, rate and duplicate checks
// run inside one transaction with the project row locked, so two
// concurrent applications cannot both pass the duplicate check.
func (s *ApplicationService) ApplyToProject(ctx context.Context, freelancerID, projectID uint, req ApplyRequest) (*model.ProjectApplication, error) {
	var app model.ProjectApplication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := lockForUpdate(tx).
			Where("id = ? AND status = ?", projectID, model.ProjectPublished).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Project not found or not accepting applications")
			}
			return err
		}

		if req.ProposedRate < project.BudgetMin || req.ProposedRate > project.BudgetMax {
			return apperr.BadRequest("Proposed rate must be within project budget range")
		}

		var count int64
		if err := tx.Model(&model.ProjectApplication{}).
			Where("project_id = ? AND freelancer_id = ?", projectID, freelancerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.BadRequest("You have already applied to this project")
		}

		app = model.ProjectApplication{
			ProjectID:         projectID,
			FreelancerID:      freelancerID,
			CoverLetter:       req.CoverLetter,
			ProposedRate:      req.ProposedRate,
			EstimatedDuration: req.EstimatedDuration,
			Status:            model.ApplicationApplied,
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}

		return tx.Model(&model.Project{}).Where("id = ?", projectID).
			UpdateColumn("applicants_count", gorm.Expr("applicants_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus moves an application through the transition table. A
// transition into accepted additionally flips the parent project to
// in_progress and bulk-rejects every sibling still in a non-terminal
// state; the cascade is a system-driven update and deliberately skips the
// per-row transition checks.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID uint, newStatus model.ApplicationStatus, actingUserID uint, rejectionReason string) (*model.ProjectApplication, error) {
	if !model.KnownApplicationStatus(newStatus) {
		return nil, apperr.BadRequest("Invalid application status")
	}

	var app model.ProjectApplication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Application not found")
			}
			return err
		}

		// Lock the project row before validating anything. Concurrent
		// status changes on the same project serialize here, and the
		// re-read below sees whatever the winner committed.
		var project model.Project
		if err := lockForUpdate(tx).First(&project, app.ProjectID).Error; err != nil {
			return err
		}
		if err := tx.First(&app, applicationID).Error; err != nil {
			return err
		}
		app.Project = project

		byClient := actingUserID == project.ClientID
		if !byClient && actingUserID != app.FreelancerID {
			// Not a party to this application.
			return apperr.NotFound("Application not found")
		}

		if !model.CanTransition(app.Status, newStatus, byClient) {
			return apperr.BadRequest(fmt.Sprintf("Cannot transition from %s to %s", app.Status, newStatus))
		}

		if newStatus == model.ApplicationAccepted {
			if err := acceptCascade(tx, &app); err != nil {
				return err
			}
		}

		updates := map[string]any{"status": newStatus}
		if newStatus == model.ApplicationRejected && rejectionReason != "" {
			updates["rejection_reason"] = rejectionReason
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}
		app.Status = newStatus
		if newStatus == model.ApplicationRejected && rejectionReason != "" {
			app.RejectionReason = rejectionReason
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// acceptCascade runs the acceptance side effect: the parent project moves
// to in_progress and every competing application still in a non-terminal
// state is forced to rejected. The caller holds the project row lock.
// Terminal statuses are never overwritten; should an accepted sibling
// exist anyway, the unique accepted-per-project index aborts the
// caller's own update.
func acceptCascade(tx *gorm.DB, app *model.ProjectApplication) error {
	if err := tx.Model(&model.Project{}).Where("id = ?", app.ProjectID).
		Update("status", model.ProjectInProgress).Error; err != nil {
		return err
	}

	return tx.Model(&model.ProjectApplication{}).
		Where("project_id = ? AND id <> ? AND status NOT IN ?",
			app.ProjectID, app.ID,
			[]model.ApplicationStatus{model.ApplicationWithdrawn, model.ApplicationRejected, model.ApplicationAccepted}).
		Update("status", model.ApplicationRejected).Error
}

// Withdraw sets the caller's own application to withdrawn. The lookup is
// scoped by freelancer id, so foreign applications surface as NotFound.
// The project row lock serializes the transition check against a
// concurrent acceptance cascade on the same project.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, freelancerID uint, reason string) (*model.ProjectApplication, error) {
	var app model.ProjectApplication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND freelancer_id = ?", applicationID, freelancerID).
			First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Application not found")
			}
			return err
		}

		var project model.Project
		if err := lockForUpdate(tx).First(&project, app.ProjectID).Error; err != nil {
			return err
		}
		if err := tx.First(&app, app.ID).Error; err != nil {
			return err
		}

		if !model.CanTransition(app.Status, model.ApplicationWithdrawn, false) {
			return apperr.BadRequest("Cannot withdraw application in current status")
		}

		updates := map[string]any{"status": model.ApplicationWithdrawn}
		if reason != "" {
			updates["withdrawal_reason"] = reason
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}
		app.Status = model.ApplicationWithdrawn
		app.WithdrawalReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

type ApplicationFilters struct {
	Statuses  []model.ApplicationStatus
	ProjectID uint
}

type PageMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Limit       int   `json:"limit"`
}

// List returns applications visible to the caller: freelancers see their
// own, clients see applications on projects they own. Meta is nil when no
// pagination was requested, in which case the full result set is returned.
func (s *ApplicationService) List(ctx context.Context, userID uint, userType model.UserType, filters ApplicationFilters, page, limit int) ([]model.ProjectApplication, *PageMeta, error) {
	build := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&model.ProjectApplication{})
		if len(filters.Statuses) > 0 {
			q = q.Where("status IN ?", filters.Statuses)
		}
		if filters.ProjectID != 0 {
			q = q.Where("project_id = ?", filters.ProjectID)
		}
		switch userType {
		case model.UserTypeFreelancer:
			q = q.Where("freelancer_id = ?", userID)
		case model.UserTypeClient:
			q = q.Where("project_id IN (?)",
				s.db.Model(&model.Project{}).Select("id").Where("client_id = ?", userID))
		}
		return q
	}

	var apps []model.ProjectApplication
	find := build().
		Preload("Project").Preload("Project.Client").Preload("Freelancer").
		Order("created_at DESC")

	if page <= 0 || limit <= 0 {
		if err := find.Find(&apps).Error; err != nil {
			return nil, nil, err
		}
		return apps, nil, nil
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, nil, err
	}
	if err := find.Offset((page - 1) * limit).Limit(limit).Find(&apps).Error; err != nil {
		return nil, nil, err
	}
	meta := &PageMeta{
		Total:       total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		Limit:       limit,
	}
	return apps, meta, nil
}

// HTTP layer

type ApplicationHandler struct {
	svc *ApplicationService
}

func NewApplicationHandler(svc *ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	app, err := h.svc.ApplyToProject(c.Request.Context(), msg.UserID, projectID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

type UpdateStatusReq struct {
	Status          model.ApplicationStatus `json:"status" binding:"required"`
	RejectionReason string                  `json:"rejectionReason"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	app, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, msg.UserID, req.RejectionReason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, app)
}

type ApplicationListReq struct {
	Status []model.ApplicationStatus `form:"status[]"`
	Page   int                       `form:"page"`
	Limit  int                       `form:"limit,default=0" binding:"lte=100"`
}

func (h *ApplicationHandler) List(c *gin.Context) {
	h.list(c, 0)
}

func (h *ApplicationHandler) ListForProject(c *gin.Context) {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	h.list(c, projectID)
}

func (h *ApplicationHandler) list(c *gin.Context, projectID uint) {
	var req ApplicationListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	apps, meta, err := h.svc.List(c.Request.Context(), msg.UserID, msg.UserType,
		ApplicationFilters{Statuses: req.Status, ProjectID: projectID}, req.Page, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if meta != nil {
		response.Success(c, gin.H{"data": apps, "pagination": meta})
		return
	}
	response.Success(c, apps)
}

type WithdrawReq struct {
	WithdrawalReason string `json:"withdrawalReason"`
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var req WithdrawReq
	// Body is optional on withdraw.
	_ = c.ShouldBindJSON(&req)
	msg := authMessage(c)
	app, err := h.svc.Withdraw(c.Request.Context(), id, msg.UserID, req.WithdrawalReason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, app)
}

func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// RegisterApplications wires the application routes.
func RegisterApplications(api *gin.RouterGroup, h *ApplicationHandler) {
	api.POST("/projects/:id/apply", RequireUserType(model.UserTypeFreelancer), h.Apply)

	apps := api.Group("/applications")
	apps.PUT("/:id/status", h.UpdateStatus)
	apps.GET("", h.List)
	apps.GET("/my", RequireUserType(model.UserTypeFreelancer), h.List)
	apps.GET("/projects/:projectId", RequireUserType(model.UserTypeClient), h.ListForProject)
	apps.DELETE("/:id/withdraw", RequireUserType(model.UserTypeFreelancer), h.Withdraw)
}
