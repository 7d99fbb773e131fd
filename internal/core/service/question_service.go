package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// QuestionService manages the submitted-question lifecycle:
// pending → answered → converted.
type QuestionService struct {
	questions ports.QuestionRepository
	faqs      ports.FAQRepository
	logger    zerolog.Logger
}

func NewQuestionService(questions ports.QuestionRepository, faqs ports.FAQRepository, logger zerolog.Logger) *QuestionService {
	return &QuestionService{questions: questions, faqs: faqs, logger: logger}
}

// Submit stores a new user question in the pending state. All four fields are
// required; there is no rate limiting or deduplication.
func (s *QuestionService) Submit(ctx context.Context, input ports.SubmitQuestionInput) (*domain.UserQuestion, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	question := strings.TrimSpace(input.Question)
	userID := strings.TrimSpace(input.UserID)

	if name == "" || email == "" || question == "" || userID == "" {
		return nil, domain.ErrMissingFields
	}

	q := &domain.UserQuestion{
		Name:      name,
		Email:     email,
		Question:  question,
		UserID:    userID,
		Status:    domain.StatusPending,
		Tags:      []string{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.questions.Create(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store user question")
		return nil, err
	}

	s.logger.Info().Str("question_id", created.ID).Str("user_id", userID).Msg("question submitted")
	return created, nil
}

// List returns questions matching the filter, newest first.
func (s *QuestionService) List(ctx context.Context, filter ports.ListQuestionsFilter) ([]*domain.UserQuestion, error) {
	return s.questions.List(ctx, filter)
}

// Answer applies an admin answer and moves the question to answered.
// Re-answering an answered question overwrites the previous answer; a
// converted question can no longer be edited. Category and tags are only
// overwritten when supplied.
func (s *QuestionService) Answer(ctx context.Context, input ports.AnswerQuestionInput) (*domain.UserQuestion, error) {
	if input.AdminID == "" {
		return nil, domain.ErrForbidden
	}
	answer := strings.TrimSpace(input.Answer)
	if answer == "" {
		return nil, domain.ErrMissingFields
	}

	q, err := s.questions.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !q.Status.CanTransitionTo(domain.StatusAnswered) {
		return nil, domain.ErrAlreadyConverted
	}

	updated, err := s.questions.SetAnswer(ctx, q.ID, ports.AnswerUpdate{
		Answer:     answer,
		AnsweredBy: input.AdminID,
		AnsweredAt: time.Now().UTC(),
		Category:   input.Category,
		Tags:       input.Tags,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("question_id", q.ID).Msg("failed to store answer")
		return nil, err
	}

	s.logger.Info().
		Str("question_id", q.ID).
		Str("admin_id", input.AdminID).
		Str("previous_status", string(q.Status)).
		Msg("question answered")

	return updated, nil
}

// ConvertToFAQ promotes an answered question into a published FAQ. The FAQ is
// created first; the question is then flipped answered → converted with a
// compare-and-swap on status. If the swap loses to a concurrent convert, or
// the question update fails, the just-created FAQ is deleted as compensation
// so no orphan remains.
func (s *QuestionService) ConvertToFAQ(ctx context.Context, input ports.ConvertQuestionInput) (*ports.ConvertResult, error) {
	if input.AdminID == "" {
		return nil, domain.ErrForbidden
	}

	q, err := s.questions.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if q.Status == domain.StatusConverted {
		return nil, domain.ErrAlreadyConverted
	}
	if strings.TrimSpace(q.Answer) == "" {
		return nil, domain.ErrNotAnswered
	}

	faq, err := s.faqs.Create(ctx, &domain.FAQ{
		Question:  q.Question,
		Answer:    q.Answer,
		Category:  resolveCategory(input.Category, q.Category),
		Tags:      resolveTags(input.Tags, q.Tags),
		CreatedBy: input.AdminID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("question_id", q.ID).Msg("failed to create faq from question")
		return nil, err
	}

	updated, err := s.questions.MarkConverted(ctx, q.ID, faq.ID)
	if err != nil {
		if delErr := s.faqs.Delete(ctx, faq.ID); delErr != nil {
			s.logger.Error().Err(delErr).
				Str("faq_id", faq.ID).
				Str("question_id", q.ID).
				Msg("compensation failed, orphaned faq left behind")
		}
		return nil, err
	}

	s.logger.Info().
		Str("question_id", q.ID).
		Str("faq_id", faq.ID).
		Str("admin_id", input.AdminID).
		Msg("question converted to faq")

	return &ports.ConvertResult{FAQ: faq, Question: updated}, nil
}

// resolveCategory picks explicit argument > question's own > default.
func resolveCategory(explicit, own string) string {
	if explicit != "" {
		return explicit
	}
	if own != "" {
		return own
	}
	return domain.DefaultCategory
}

// resolveTags picks explicit argument > question's own > empty set.
func resolveTags(explicit, own []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if len(own) > 0 {
		return own
	}
	return []string{}
}
