package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Avatar       string `json:"avatar"`
	Role         string `gorm:"default:student" json:"role"` // student, admin
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}

// Enrollment links a user to a course from the catalog.
type Enrollment struct {
	gorm.Model
	UserID   uint `gorm:"index:idx_enrollment_user_course,unique"`
	CourseID uint `gorm:"index:idx_enrollment_user_course,unique"`
}
