package models

import "gorm.io/gorm"

// Node statuses are derived on every read, never stored.
const (
	NodeCompleted = "completed"
	NodeActive    = "active"
	NodeLocked    = "locked"
)

const (
	NodeKindCourse = "course"
	NodeKindQuiz   = "quiz"
)

type LearningPath struct {
	gorm.Model
	Title             string           `gorm:"not null" json:"title"`
	Description       string           `json:"description"`
	Thumbnail         string           `json:"thumbnail"`
	Category          string           `json:"category"`
	EstimatedDuration string           `json:"estimatedDuration"`
	EnrolledCount     int              `gorm:"default:0" json:"enrolledCount"`
	Nodes             []PathNode       `gorm:"foreignKey:PathID" json:"nodes"`
	Connections       []PathConnection `gorm:"foreignKey:PathID" json:"connections"`
}

// PathNode is one step of a learning path. SequenceOrder defines the unlock
// traversal order; PositionX/PositionY are presentation only.
type PathNode struct {
	gorm.Model
	PathID        uint    `json:"pathId"`
	Title         string  `json:"title"`
	Kind          string  `gorm:"default:course" json:"kind"` // course, quiz
	CourseID      *uint   `json:"courseId,omitempty"`
	QuizID        *uint   `json:"quizId,omitempty"`
	PositionX     float64 `json:"positionX"`
	PositionY     float64 `json:"positionY"`
	SequenceOrder int     `json:"order"`
}

type PathConnection struct {
	gorm.Model
	PathID   uint `json:"pathId"`
	FromNode int  `json:"from"`
	ToNode   int  `json:"to"`
}
