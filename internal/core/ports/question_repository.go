package ports

import (
	"context"
	"time"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// ListQuestionsFilter narrows the question listing. Empty fields apply no filter.
type ListQuestionsFilter struct {
	Status string
	UserID string
}

// AnswerUpdate carries the fields written when an admin answers a question.
// Category and Tags are only overwritten when non-nil.
type AnswerUpdate struct {
	Answer     string
	AnsweredBy string
	AnsweredAt time.Time
	Category   *string
	Tags       *[]string
}

// QuestionRepository defines persistence operations for submitted questions.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.UserQuestion) (*domain.UserQuestion, error)
	FindByID(ctx context.Context, id string) (*domain.UserQuestion, error)
	// FindByEmail returns all questions submitted with the given email, newest first.
	FindByEmail(ctx context.Context, email string) ([]*domain.UserQuestion, error)
	// List returns questions matching filter, newest first.
	List(ctx context.Context, filter ListQuestionsFilter) ([]*domain.UserQuestion, error)
	// SetAnswer applies an answer to the question and moves it to answered.
	SetAnswer(ctx context.Context, id string, upd AnswerUpdate) (*domain.UserQuestion, error)
	// MarkConverted flips the question from answered to converted and records
	// the FAQ it became. The update is a compare-and-swap on status=answered:
	// a concurrent convert loses with domain.ErrConversionConflict.
	MarkConverted(ctx context.Context, id, faqID string) (*domain.UserQuestion, error)
}
