package ports

import (
	"context"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// AddHelpfulVote records faqID in the user's helpful set. Returns false
	// when the FAQ was already in the set (vote must not count twice).
	AddHelpfulVote(ctx context.Context, userID, faqID string) (bool, error)
}
