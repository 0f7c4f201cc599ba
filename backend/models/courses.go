package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description"`
	Thumbnail     string         `json:"thumbnail"`
	Category      string         `json:"category"`
	Difficulty    string         `gorm:"default:Beginner" json:"difficulty"` // Beginner, Intermediate, Advanced, All Levels
	Duration      string         `json:"duration"`
	Rating        float64        `gorm:"default:4.5" json:"rating"`
	EnrolledCount int            `gorm:"default:0" json:"enrolledCount"`
	Tags          string         `json:"tags"` // comma-separated
	Modules       []CourseModule `json:"modules"`
}

type CourseModule struct {
	gorm.Model
	CourseID      uint     `json:"courseId"`
	Title         string   `gorm:"not null" json:"title"`
	SequenceOrder int      `json:"sequenceOrder"`
	Lessons       []Lesson `gorm:"foreignKey:ModuleID" json:"lessons"`
}

// Lesson carries a stable external LessonID (uuid) which is the key used in
// completion records, independent of the database row ID.
type Lesson struct {
	gorm.Model
	ModuleID      uint   `json:"moduleId"`
	LessonID      string `gorm:"uniqueIndex;not null" json:"lessonId"`
	Title         string `gorm:"not null" json:"title"`
	VideoURL      string `json:"videoUrl"`
	YoutubeURL    string `json:"youtubeUrl"`
	Duration      string `json:"duration"`
	Content       string `json:"content"`
	FreePreview   bool   `gorm:"default:false" json:"freePreview"`
	SequenceOrder int    `json:"sequenceOrder"`
}
