package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	QueryStatusPending = "pending"
	QueryStatusReplied = "replied"
	QueryStatusClosed  = "closed"
)

// Query is a user feedback request with an optional admin reply.
type Query struct {
	gorm.Model
	UserID       uint       `gorm:"not null" json:"userId"`
	Subject      string     `gorm:"not null" json:"subject"`
	Message      string     `gorm:"not null" json:"message"`
	Category     string     `gorm:"default:general" json:"category"` // general, technical, billing, course, other
	Status       string     `gorm:"default:pending" json:"status"`   // pending, replied, closed
	ReplyMessage string     `json:"replyMessage,omitempty"`
	RepliedAt    *time.Time `json:"repliedAt,omitempty"`
	RepliedByID  *uint      `json:"repliedBy,omitempty"`
}
