package utils

import (
	"fmt"

	"learnhub/backend/config"
	"learnhub/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает соединение с базой и выполняет миграции
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginHistory{},
		&models.Enrollment{},
		&models.Course{},
		&models.CourseModule{},
		&models.Lesson{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.LearningPath{},
		&models.PathNode{},
		&models.PathConnection{},
		&models.UserProgress{},
		&models.CourseInProgress{},
		&models.CourseCompletion{},
		&models.QuizCompletion{},
		&models.Query{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
