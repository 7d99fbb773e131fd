package ports

import (
	"context"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// ProfileResult is the caller's own view: their submitted questions (matched
// by account email) and the FAQs they marked helpful.
type ProfileResult struct {
	User          *domain.User
	UserQuestions []*domain.UserQuestion
	HelpfulFAQs   []*domain.FAQ
}

// ProfileService assembles the profile page data for an authenticated user.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*ProfileResult, error)
}
