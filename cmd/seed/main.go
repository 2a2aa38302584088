// Command seed loads a development dataset: the course catalog, an admin
// account and a couple of demo users with profiles. Idempotent, safe to run
// against a database that already has the rows.
package main

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"peerconnect/internal/config"
	"peerconnect/internal/database"
	"peerconnect/internal/domain"
)

var courses = []domain.Course{
	{Code: "MATH101", Name: "Calculus I", Department: "Mathematics"},
	{Code: "MATH201", Name: "Linear Algebra", Department: "Mathematics"},
	{Code: "CS101", Name: "Introduction to Programming", Department: "Computer Science"},
	{Code: "CS201", Name: "Data Structures and Algorithms", Department: "Computer Science"},
	{Code: "PHYS101", Name: "Classical Mechanics", Department: "Physics"},
	{Code: "CHEM101", Name: "General Chemistry", Department: "Chemistry"},
	{Code: "ECON101", Name: "Microeconomics", Department: "Economics"},
	{Code: "STAT201", Name: "Probability and Statistics", Department: "Mathematics"},
}

type seedUser struct {
	email    string
	password string
	fullName string
	role     domain.Role
}

var users = []seedUser{
	{"admin@peerconnect.local", "admin-password", "Site Admin", domain.RoleAdmin},
	{"ada@peerconnect.local", "demo-password", "Ada Lovelace", domain.RoleUser},
	{"grace@peerconnect.local", "demo-password", "Grace Hopper", domain.RoleUser},
}

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	if err := seedCourses(db); err != nil {
		log.Fatal("failed to seed courses", zap.Error(err))
	}
	log.Info("seeded courses", zap.Int("count", len(courses)))

	created, err := seedUsers(db)
	if err != nil {
		log.Fatal("failed to seed users", zap.Error(err))
	}
	log.Info("seeded users", zap.Int("created", created))
}

func seedCourses(db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&courses).Error
}

func seedUsers(db *gorm.DB) (int, error) {
	created := 0
	for _, su := range users {
		var count int64
		if err := db.Model(&domain.User{}).Where("email = ?", su.email).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return created, err
		}
		user := domain.User{Email: su.email, PasswordHash: string(hash), Role: su.role}
		if err := db.Create(&user).Error; err != nil {
			return created, err
		}
		if err := db.Create(&domain.Profile{UserID: user.ID, FullName: su.fullName}).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
