package ports

import (
	"context"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// SubmitQuestionInput carries an end-user question submission. UserID is a
// client-generated correlation token, not an authenticated identity.
type SubmitQuestionInput struct {
	Name     string
	Email    string
	Question string
	UserID   string
}

// AnswerQuestionInput carries an admin answer. Category and Tags overwrite the
// stored values only when non-nil. AdminID is the authenticated caller.
type AnswerQuestionInput struct {
	ID       string
	Answer   string
	Category *string
	Tags     *[]string
	AdminID  string
}

// ConvertQuestionInput promotes an answered question into a FAQ. Category and
// Tags, when set, take precedence over the question's own values.
type ConvertQuestionInput struct {
	ID       string
	Category string
	Tags     []string
	AdminID  string
}

// ConvertResult bundles the new FAQ with the updated source question.
type ConvertResult struct {
	FAQ      *domain.FAQ
	Question *domain.UserQuestion
}

// QuestionService manages the submission lifecycle:
// pending → answered → converted.
type QuestionService interface {
	Submit(ctx context.Context, input SubmitQuestionInput) (*domain.UserQuestion, error)
	List(ctx context.Context, filter ListQuestionsFilter) ([]*domain.UserQuestion, error)
	Answer(ctx context.Context, input AnswerQuestionInput) (*domain.UserQuestion, error)
	ConvertToFAQ(ctx context.Context, input ConvertQuestionInput) (*ConvertResult, error)
}
