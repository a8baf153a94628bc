package query

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
)

var seedSkills = []model.Skill{
	{Name: "JavaScript", Category: "Programming Languages"},
	{Name: "Python", Category: "Programming Languages"},
	{Name: "TypeScript", Category: "Programming Languages"},
	{Name: "Go", Category: "Programming Languages"},
	{Name: "React", Category: "Frontend"},
	{Name: "HTML5", Category: "Frontend"},
	{Name: "CSS3", Category: "Frontend"},
	{Name: "Next.js", Category: "Frontend"},
	{Name: "Tailwind CSS", Category: "Frontend"},
	{Name: "Node.js", Category: "Backend"},
	{Name: "Express.js", Category: "Backend"},
	{Name: "Django", Category: "Backend"},
	{Name: "Spring Boot", Category: "Backend"},
	{Name: "MySQL", Category: "Database"},
	{Name: "PostgreSQL", Category: "Database"},
	{Name: "MongoDB", Category: "Database"},
	{Name: "Redis", Category: "Database"},
}

type seedUser struct {
	user    model.User
	profile model.UserProfile
	skills  []string
}

var seedUsers = []seedUser{
	{
		user: model.User{Email: "client@buddy.co", Name: "John Client", UserType: model.UserTypeClient},
	},
	{
		user:    model.User{Email: "fe.dev@buddy.co", Name: "Sarah Frontend", UserType: model.UserTypeFreelancer},
		profile: model.UserProfile{Title: "Frontend Developer", Bio: "Specialized in React and modern frontend technologies", HourlyRate: 45, ExperienceInMonths: 36},
		skills:  []string{"JavaScript", "TypeScript", "React", "Next.js", "Tailwind CSS"},
	},
	{
		user:    model.User{Email: "be.dev@buddy.co", Name: "Mike Backend", UserType: model.UserTypeFreelancer},
		profile: model.UserProfile{Title: "Backend Developer", Bio: "Expert in Node.js and API development", HourlyRate: 50, ExperienceInMonths: 48},
		skills:  []string{"JavaScript", "Node.js", "Express.js", "PostgreSQL"},
	},
	{
		user:    model.User{Email: "fs.dev@buddy.co", Name: "Alex Fullstack", UserType: model.UserTypeFreelancer},
		profile: model.UserProfile{Title: "Full Stack Developer", Bio: "Full stack developer with expertise in MERN stack", HourlyRate: 60, ExperienceInMonths: 60},
		skills:  []string{"JavaScript", "React", "Node.js", "MongoDB"},
	},
	{
		user:    model.User{Email: "db.dev@buddy.co", Name: "Diana Database", UserType: model.UserTypeFreelancer},
		profile: model.UserProfile{Title: "Database Specialist", Bio: "Database expert with focus on performance optimization", HourlyRate: 55, ExperienceInMonths: 42},
		skills:  []string{"MySQL", "PostgreSQL", "MongoDB", "Redis"},
	},
}

// Seed inserts the skill catalog and demo accounts. Idempotent, safe to
// run against a non-empty database.
func Seed(db *gorm.DB) error {
	for i := range seedSkills {
		if err := db.Where(model.Skill{Name: seedSkills[i].Name}).
			FirstOrCreate(&seedSkills[i]).Error; err != nil {
			return err
		}
	}

	skillsByName := make(map[string]uint, len(seedSkills))
	for _, s := range seedSkills {
		skillsByName[s.Name] = s.ID
	}

	for _, su := range seedUsers {
		u := su.user
		u.Profile = datatypes.NewJSONType(su.profile)
		if err := db.Where(model.User{Email: u.Email}).FirstOrCreate(&u).Error; err != nil {
			return err
		}
		for _, name := range su.skills {
			skillID, ok := skillsByName[name]
			if !ok {
				continue
			}
			us := model.UserSkill{UserID: u.ID, SkillID: skillID, ProficiencyLevel: model.ProficiencyIntermediate}
			if err := db.Where(model.UserSkill{UserID: u.ID, SkillID: skillID}).
				FirstOrCreate(&us).Error; err != nil {
				return err
			}
		}
	}

	logutils.Log.Infof("seeded %d skills and %d users", len(seedSkills), len(seedUsers))
	return nil
}
