package models

import "gorm.io/gorm"

type Quiz struct {
	gorm.Model
	Title        string         `gorm:"not null" json:"title"`
	PassingScore int            `gorm:"default:70" json:"passingScore"` // percentage
	Questions    []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `json:"quizId"`
	Question      string `gorm:"not null" json:"question"`
	Options       string `json:"options"` // JSON array of options
	CorrectAnswer int    `json:"correctAnswer"` // zero-based option index
	SequenceOrder int    `json:"sequenceOrder"`
}
