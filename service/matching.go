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

// impossibleSkillID stands in for an empty skill set so the skill filter
// matches nothing instead of degenerating into an unfiltered query.
const impossibleSkillID uint = 0

type MatchedProject struct {
	model.Project
	// MatchScore is the share of the project's required skills the
	// freelancer covers, as a percentage. The only per-result quality
	// signal the matching engine produces.
	MatchScore float64 `json:"matchScore"`
}

type MatchingPage struct {
	Projects   []MatchedProject `json:"projects"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// MatchingProjects ranks published projects against the freelancer's
// skill set. It delegates to the generic project query with status forced
// to published and skills intersected with the caller's set, then scores
// each result by skill overlap.
func (s *ProjectService) MatchingProjects(ctx context.Context, freelancerID uint, filters ProjectFilters, page, limit int) (*MatchingPage, error) {
	var freelancer model.User
	if err := s.db.WithContext(ctx).First(&freelancer, freelancerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Freelancer not found")
		}
		return nil, err
	}

	var skillIDs []uint
	if err := s.db.WithContext(ctx).Model(&model.UserSkill{}).
		Where("user_id = ?", freelancerID).
		Pluck("skill_id", &skillIDs).Error; err != nil {
		return nil, err
	}

	owned := make(map[uint]struct{}, len(skillIDs))
	for _, id := range skillIDs {
		owned[id] = struct{}{}
	}
	if len(skillIDs) == 0 {
		skillIDs = []uint{impossibleSkillID}
	}

	filters.Status = string(model.ProjectPublished)
	filters.Skills = skillIDs
	pageRes, err := s.List(ctx, filters, model.UserTypeFreelancer, freelancerID, page, limit)
	if err != nil {
		return nil, err
	}

	matched := make([]MatchedProject, 0, len(pageRes.Projects))
	for _, p := range pageRes.Projects {
		matched = append(matched, MatchedProject{Project: p, MatchScore: matchScore(p.Skills, owned)})
	}
	return &MatchingPage{
		Projects:   matched,
		Total:      pageRes.Total,
		Page:       pageRes.Page,
		TotalPages: pageRes.TotalPages,
	}, nil
}

// matchScore is (overlapping skills / skills required by the project) * 100.
func matchScore(required []model.Skill, owned map[uint]struct{}) float64 {
	if len(required) == 0 {
		return 0
	}
	overlap := 0
	for _, skill := range required {
		if _, ok := owned[skill.ID]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(required)) * 100
}

// HTTP layer

type MatchingHandler struct {
	svc *ProjectService
}

func NewMatchingHandler(svc *ProjectService) *MatchingHandler {
	return &MatchingHandler{svc: svc}
}

func (h *MatchingHandler) Matching(c *gin.Context) {
	var req ProjectListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg := authMessage(c)
	pageRes, err := h.svc.MatchingProjects(c.Request.Context(), msg.UserID, req.filters(), req.Page, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageRes)
}
