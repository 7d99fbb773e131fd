package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// ProfileService assembles the profile view: the caller's submitted questions
// (matched by account email) and the FAQs they marked helpful.
type ProfileService struct {
	users     ports.UserRepository
	questions ports.QuestionRepository
	faqs      ports.FAQRepository
	logger    zerolog.Logger
}

func NewProfileService(users ports.UserRepository, questions ports.QuestionRepository, faqs ports.FAQRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, questions: questions, faqs: faqs, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*ports.ProfileResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.FindByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load profile questions")
		return nil, err
	}

	helpful, err := s.faqs.FindByIDs(ctx, user.HelpfulVotes)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load helpful faqs")
		return nil, err
	}

	return &ports.ProfileResult{
		User:          user,
		UserQuestions: questions,
		HelpfulFAQs:   helpful,
	}, nil
}
