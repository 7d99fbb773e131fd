package ports

import (
	"context"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// AuthService implements account registration and login.
type AuthService interface {
	// Register creates a user account. The email is lowercased before storage.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
