package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pavithranrajkumar/devbuddy-backend/apperr"
	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
	"github.com/pavithranrajkumar/devbuddy-backend/response"
)

// ProjectService owns project CRUD and the filtered query layer consumed
// by listings and matching.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Title       string    `json:"title" binding:"required,min=5,max=100"`
	Description string    `json:"description" binding:"required"`
	BudgetMin   float64   `json:"budgetMin" binding:"required,gte=0"`
	BudgetMax   float64   `json:"budgetMax" binding:"required,gte=0"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Skills      []uint    `json:"skills"`
}

func (s *ProjectService) Create(ctx context.Context, clientID uint, req CreateProjectRequest) (*model.Project, error) {
	if req.BudgetMin > req.BudgetMax {
		return nil, apperr.BadRequest("budgetMin must be less than or equal to budgetMax")
	}
	if !req.Deadline.After(time.Now()) {
		return nil, apperr.BadRequest("Deadline must be in the future")
	}
	skills, err := s.resolveSkills(ctx, req.Skills)
	if err != nil {
		return nil, err
	}

	project := model.Project{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    clientID,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
		Status:      model.ProjectPublished,
		Skills:      skills,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

type UpdateProjectRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=5,max=100"`
	Description *string    `json:"description"`
	BudgetMin   *float64   `json:"budgetMin" binding:"omitempty,gte=0"`
	BudgetMax   *float64   `json:"budgetMax" binding:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline"`
	Skills      []uint     `json:"skills"`
}

// Update mutates a project owned by the caller. Once applications exist
// the budget range may only widen: narrowing either bound fails.
func (s *ProjectService) Update(ctx context.Context, projectID, clientID uint, req UpdateProjectRequest) (*model.Project, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", projectID, clientID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}

	newMin, newMax := project.BudgetMin, project.BudgetMax
	if req.BudgetMin != nil {
		newMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		newMax = *req.BudgetMax
	}
	if newMin > newMax {
		return nil, apperr.BadRequest("budgetMin must be less than or equal to budgetMax")
	}
	if project.ApplicantsCount > 0 && (newMin < project.BudgetMin || newMax < project.BudgetMax) {
		return nil, apperr.BadRequest("Cannot reduce budget after receiving applications")
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BudgetMin != nil {
		updates["budget_min"] = newMin
	}
	if req.BudgetMax != nil {
		updates["budget_max"] = newMax
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if req.Skills != nil {
		skills, err := s.resolveSkills(ctx, req.Skills)
		if err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&project).
			Association("Skills").Replace(skills); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, projectID)
}

func (s *ProjectService) Get(ctx context.Context, projectID uint) (*model.Project, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).
		Preload("Client").Preload("Skills").
		First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) resolveSkills(ctx context.Context, ids []uint) ([]model.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var skills []model.Skill
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error; err != nil {
		return nil, err
	}
	if len(skills) != len(ids) {
		return nil, apperr.BadRequest("One or more skills do not exist")
	}
	return skills, nil
}

type ProjectFilters struct {
	Status            string
	BudgetMin         *float64
	BudgetMax         *float64
	Skills            []uint
	Search            string
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
	HasDeadlineBefore *time.Time
	SortBy            string
	SortOrder         string
}

type ProjectPage struct {
	Projects   []model.Project `json:"projects"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// Column whitelist for user-supplied sort fields.
var projectSortColumns = map[string]string{
	"createdAt":       "created_at",
	"budgetMin":       "budget_min",
	"deadline":        "deadline",
	"applicantsCount": "applicants_count",
}

// List applies the conjunctive project filter. Budget filters use range
// overlap, not containment: a project matches when each interval's
// minimum is at most the other's maximum. Skill filters join through the
// project_skills association table. Client callers only ever see their
// own projects.
func (s *ProjectService) List(ctx context.Context, filters ProjectFilters, callerType model.UserType, callerID uint, page, limit int) (*ProjectPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	build := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&model.Project{})
		if callerType == model.UserTypeClient {
			q = q.Where("client_id = ?", callerID)
		}
		if filters.Status != "" && filters.Status != "all" {
			q = q.Where("status = ?", filters.Status)
		}
		if filters.BudgetMin != nil {
			q = q.Where("budget_max >= ?", *filters.BudgetMin)
		}
		if filters.BudgetMax != nil {
			q = q.Where("budget_min <= ?", *filters.BudgetMax)
		}
		if term := strings.TrimSpace(filters.Search); term != "" {
			pattern := "%" + strings.ToLower(term) + "%"
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
		if filters.HasDeadlineBefore != nil {
			q = q.Where("deadline <= ?", *filters.HasDeadlineBefore)
		}
		if filters.CreatedAfter != nil {
			q = q.Where("projects.created_at >= ?", *filters.CreatedAfter)
		}
		if filters.CreatedBefore != nil {
			q = q.Where("projects.created_at <= ?", *filters.CreatedBefore)
		}
		if len(filters.Skills) > 0 {
			q = q.Where("projects.id IN (?)",
				s.db.Table("project_skills").Select("project_id").Where("skill_id IN ?", filters.Skills))
		}
		return q
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := projectSortColumns[filters.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		direction = "ASC"
	}

	var projects []model.Project
	if err := build().
		Preload("Client").Preload("Skills").
		Order(column + " " + direction).
		Offset((page - 1) * limit).Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectPage{
		Projects:   projects,
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// HTTP layer

type ProjectHandler struct {
	svc *ProjectService
}

func NewProjectHandler(svc *ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	project, err := h.svc.Create(c.Request.Context(), msg.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	project, err := h.svc.Update(c.Request.Context(), id, msg.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	project, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

type ProjectListReq struct {
	Status            string     `form:"status"`
	BudgetMin         *float64   `form:"budgetMin"`
	BudgetMax         *float64   `form:"budgetMax"`
	Skills            []uint     `form:"skills"`
	Search            string     `form:"search"`
	CreatedAfter      *time.Time `form:"createdAfter" time_format:"2006-01-02"`
	CreatedBefore     *time.Time `form:"createdBefore" time_format:"2006-01-02"`
	HasDeadlineBefore *time.Time `form:"hasDeadlineBefore" time_format:"2006-01-02"`
	SortBy            string     `form:"sortBy"`
	SortOrder         string     `form:"sortOrder"`
	Page              int        `form:"page,default=1"`
	Limit             int        `form:"limit,default=10" binding:"lte=100"`
}

func (r ProjectListReq) filters() ProjectFilters {
	return ProjectFilters{
		Status:            r.Status,
		BudgetMin:         r.BudgetMin,
		BudgetMax:         r.BudgetMax,
		Skills:            r.Skills,
		Search:            r.Search,
		CreatedAfter:      r.CreatedAfter,
		CreatedBefore:     r.CreatedBefore,
		HasDeadlineBefore: r.HasDeadlineBefore,
		SortBy:            r.SortBy,
		SortOrder:         r.SortOrder,
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	var req ProjectListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	pageRes, err := h.svc.List(c.Request.Context(), req.filters(), msg.UserType, msg.UserID, req.Page, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageRes)
}

// RegisterProjects wires the project routes. The matching handler is
// registered here too so the whole /projects tree lives in one place.
func RegisterProjects(api *gin.RouterGroup, h *ProjectHandler, m *MatchingHandler) {
	projects := api.Group("/projects")
	projects.POST("", RequireUserType(model.UserTypeClient), h.Create)
	projects.GET("", h.List)
	projects.GET("/matching", RequireUserType(model.UserTypeFreelancer), m.Matching)
	projects.GET("/:id", h.Get)
	projects.PUT("/:id", RequireUserType(model.UserTypeClient), h.Update)
}
