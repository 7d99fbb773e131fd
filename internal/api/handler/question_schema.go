package handler

import (
	"time"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// submitQuestionRequest is the payload for POST /user-questions. UserID is a
// client-generated correlation token that lets the submitter retrieve their
// own questions later.
type submitQuestionRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Question string `json:"question" validate:"required"`
	UserID   string `json:"userId"   validate:"required"`
}

// answerQuestionRequest is the payload for PUT /user-questions?id=<id>.
// Category and Tags are optional refinements applied alongside the answer.
type answerQuestionRequest struct {
	Answer   string    `json:"answer" validate:"required"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
}

// convertQuestionRequest is the payload for PATCH /user-questions?id=<id>.
// Both fields are optional; the question's own values are used when absent.
type convertQuestionRequest struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type questionResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Question       string     `json:"question"`
	UserID         string     `json:"userId"`
	Status         string     `json:"status"`
	Answer         string     `json:"answer"`
	AnsweredBy     string     `json:"answeredBy,omitempty"`
	AnsweredAt     *time.Time `json:"answeredAt,omitempty"`
	Category       string     `json:"category,omitempty"`
	Tags           []string   `json:"tags"`
	ConvertedToFAQ string     `json:"convertedToFaq,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type submitQuestionResponse struct {
	Message      string           `json:"message"`
	UserQuestion questionResponse `json:"userQuestion"`
}

type convertQuestionResponse struct {
	FAQ          faqResponse      `json:"faq"`
	UserQuestion questionResponse `json:"userQuestion"`
}

func toQuestionResponse(q *domain.UserQuestion) questionResponse {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return questionResponse{
		ID:             q.ID,
		Name:           q.Name,
		Email:          q.Email,
		Question:       q.Question,
		UserID:         q.UserID,
		Status:         string(q.Status),
		Answer:         q.Answer,
		AnsweredBy:     q.AnsweredBy,
		AnsweredAt:     q.AnsweredAt,
		Category:       q.Category,
		Tags:           tags,
		ConvertedToFAQ: q.ConvertedToFAQ,
		CreatedAt:      q.CreatedAt,
	}
}
