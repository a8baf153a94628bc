package service

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pavithranrajkumar/devbuddy-backend/apperr"
	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
	"github.com/pavithranrajkumar/devbuddy-backend/response"
)

// SkillService manages the skill catalog. Mutations are admin-only;
// everything else in the system treats skills as immutable reference data.
type SkillService struct {
	db *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

type SkillRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

func (s *SkillService) Create(ctx context.Context, req SkillRequest) (*model.Skill, error) {
	skill := model.Skill{Name: req.Name, Category: req.Category}
	if err := s.db.WithContext(ctx).Create(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *SkillService) List(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *SkillService) Get(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	if err := s.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Skill not found")
		}
		return nil, err
	}
	return &skill, nil
}

func (s *SkillService) Update(ctx context.Context, id uint, req SkillRequest) (*model.Skill, error) {
	skill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"name": req.Name, "category": req.Category}
	if err := s.db.WithContext(ctx).Model(skill).Updates(updates).Error; err != nil {
		return nil, err
	}
	skill.Name = req.Name
	skill.Category = req.Category
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, id uint) error {
	skill, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(skill).Error
}

// HTTP layer

type SkillHandler struct {
	svc *SkillService
}

func NewSkillHandler(svc *SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	skill, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, skill)
}

func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, skills)
}

func (h *SkillHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	skill, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, skill)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RegisterSkills wires the skill catalog routes.
func RegisterSkills(api *gin.RouterGroup, h *SkillHandler) {
	skills := api.Group("/skills")
	skills.GET("", h.List)
	admin := skills.Group("", RequireUserType(model.UserTypeAdmin))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}
