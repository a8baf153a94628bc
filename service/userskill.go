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

// UserSkillService maintains a freelancer's own skill set, the input side
// of the matching engine.
type UserSkillService struct {
	db *gorm.DB
}

func NewUserSkillService(db *gorm.DB) *UserSkillService {
	return &UserSkillService{db: db}
}

type AddUserSkillRequest struct {
	SkillID          uint                   `json:"skillId" binding:"required"`
	ProficiencyLevel model.ProficiencyLevel `json:"proficiencyLevel" binding:"required,oneof=beginner intermediate expert"`
}

func (s *UserSkillService) Add(ctx context.Context, userID uint, req AddUserSkillRequest) (*model.UserSkill, error) {
	var skill model.Skill
	if err := s.db.WithContext(ctx).First(&skill, req.SkillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Skill not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.UserSkill{}).
		Where("user_id = ? AND skill_id = ?", userID, req.SkillID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequest("Skill already added to profile")
	}

	userSkill := model.UserSkill{
		UserID:           userID,
		SkillID:          req.SkillID,
		ProficiencyLevel: req.ProficiencyLevel,
		Skill:            skill,
	}
	if err := s.db.WithContext(ctx).Omit("Skill").Create(&userSkill).Error; err != nil {
		return nil, err
	}
	return &userSkill, nil
}

func (s *UserSkillService) List(ctx context.Context, userID uint) ([]model.UserSkill, error) {
	var userSkills []model.UserSkill
	if err := s.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Find(&userSkills).Error; err != nil {
		return nil, err
	}
	return userSkills, nil
}

type UpdateUserSkillRequest struct {
	ProficiencyLevel model.ProficiencyLevel `json:"proficiencyLevel" binding:"required,oneof=beginner intermediate expert"`
}

func (s *UserSkillService) Update(ctx context.Context, userID, id uint, req UpdateUserSkillRequest) (*model.UserSkill, error) {
	userSkill, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(userSkill).
		Update("proficiency_level", req.ProficiencyLevel).Error; err != nil {
		return nil, err
	}
	userSkill.ProficiencyLevel = req.ProficiencyLevel
	return userSkill, nil
}

func (s *UserSkillService) Remove(ctx context.Context, userID, id uint) error {
	userSkill, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(userSkill).Error
}

func (s *UserSkillService) find(ctx context.Context, userID, id uint) (*model.UserSkill, error) {
	var userSkill model.UserSkill
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&userSkill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Skill not found for this user")
		}
		return nil, err
	}
	return &userSkill, nil
}

// HTTP layer

type UserSkillHandler struct {
	svc *UserSkillService
}

func NewUserSkillHandler(svc *UserSkillService) *UserSkillHandler {
	return &UserSkillHandler{svc: svc}
}

func (h *UserSkillHandler) Add(c *gin.Context) {
	var req AddUserSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	userSkill, err := h.svc.Add(c.Request.Context(), msg.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, userSkill)
}

func (h *UserSkillHandler) List(c *gin.Context) {
	msg := authMessage(c)
	userSkills, err := h.svc.List(c.Request.Context(), msg.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userSkills)
}

func (h *UserSkillHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var req UpdateUserSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	userSkill, err := h.svc.Update(c.Request.Context(), msg.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userSkill)
}

func (h *UserSkillHandler) Remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	if err := h.svc.Remove(c.Request.Context(), msg.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RegisterUserSkills wires the profile skill routes.
func RegisterUserSkills(api *gin.RouterGroup, h *UserSkillHandler) {
	profile := api.Group("/profile/skills")
	profile.GET("", h.List)
	freelancer := profile.Group("", RequireUserType(model.UserTypeFreelancer))
	freelancer.POST("", h.Add)
	freelancer.PUT("/:id", h.Update)
	freelancer.DELETE("/:id", h.Remove)
}
