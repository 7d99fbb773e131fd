package domain

import (
	"errors"
	"time"
)

// DefaultCategory is assigned when neither the conversion request nor the
// source question carries a category.
const DefaultCategory = "General"

var ErrFAQNotFound = errors.New("faq not found")

// FAQ is a published question/answer pair visible to all users. It is either
// authored directly by an admin or derived from exactly one converted
// UserQuestion.
type FAQ struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	Views      int64     `json:"views"`
	HelpfulYes int64     `json:"helpfulYes"`
	HelpfulNo  int64     `json:"helpfulNo"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
