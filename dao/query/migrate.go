package query

import (
	"gorm.io/gorm"

	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
)

// Migrate creates the schema plus the indexes AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Skill{},
		&model.UserSkill{},
		&model.Project{},
		&model.ProjectApplication{},
	); err != nil {
		return err
	}

	// At most one accepted application per project. The acceptance cascade
	// maintains this; the partial index is the backstop against the race
	// of two clients accepting concurrently. Supported by both postgres
	// and sqlite.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_project_accepted
		ON project_applications (project_id)
		WHERE status = 'accepted' AND deleted_at IS NULL`).Error
}
