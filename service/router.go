package service

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pavithranrajkumar/devbuddy-backend/util"
)

// NewRouter assembles the gin engine with every route registered behind
// the auth middleware.
func NewRouter(db *gorm.DB, tm *util.TokenManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	projectSvc := NewProjectService(db)
	applicationSvc := NewApplicationService(db)
	skillSvc := NewSkillService(db)
	userSkillSvc := NewUserSkillService(db)

	api := r.Group("/api", AuthMiddleware(tm))
	RegisterProjects(api, NewProjectHandler(projectSvc), NewMatchingHandler(projectSvc))
	RegisterApplications(api, NewApplicationHandler(applicationSvc))
	RegisterSkills(api, NewSkillHandler(skillSvc))
	RegisterUserSkills(api, NewUserSkillHandler(userSkillSvc))

	return r
}
