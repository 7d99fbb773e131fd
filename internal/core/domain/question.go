package domain

import (
	"errors"
	"time"
)

// QuestionStatus represents the lifecycle state of a submitted question.
type QuestionStatus string

const (
	StatusPending   QuestionStatus = "pending"
	StatusAnswered  QuestionStatus = "answered"
	StatusConverted QuestionStatus = "converted"
)

// validTransitions defines the allowed state machine transitions.
// Re-answering an already answered question is permitted; nothing
// moves backwards out of converted.
var validTransitions = map[QuestionStatus][]QuestionStatus{
	StatusPending:  {StatusAnswered},
	StatusAnswered: {StatusAnswered, StatusConverted},
}

var ErrQuestionNotFound = errors.New("question not found")
var ErrMissingFields = errors.New("missing required fields")
var ErrNotAnswered = errors.New("question must be answered first")
var ErrAlreadyConverted = errors.New("question already converted")
var ErrConversionConflict = errors.New("question converted concurrently")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s QuestionStatus) CanTransitionTo(next QuestionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// UserQuestion is a free-text question submitted by an end user. The UserID
// field is a client-generated correlation token, not an authenticated
// identity; AnsweredBy references the admin who supplied the answer.
type UserQuestion struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Question       string         `json:"question"`
	UserID         string         `json:"userId"`
	Status         QuestionStatus `json:"status"`
	Answer         string         `json:"answer"`
	AnsweredBy     string         `json:"answeredBy,omitempty"`
	AnsweredAt     *time.Time     `json:"answeredAt,omitempty"`
	Category       string         `json:"category,omitempty"`
	Tags           []string       `json:"tags"`
	ConvertedToFAQ string         `json:"convertedToFaq,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}
