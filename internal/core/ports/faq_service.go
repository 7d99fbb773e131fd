package ports

import (
	"context"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// ListFAQsInput carries the raw listing parameters as received from the API.
type ListFAQsInput struct {
	Search   string
	Category string
	Tag      string
	Sort     string
	Page     int
	Limit    int
}

// ListFAQsResult is the paged listing plus facets and pagination metadata.
type ListFAQsResult struct {
	FAQs        []*domain.FAQ
	Categories  []string
	Tags        []string
	TotalFAQs   int64
	TotalPages  int
	CurrentPage int
	Limit       int
	HasNextPage bool
	HasPrevPage bool
}

// CreateFAQInput carries the fields for a directly authored FAQ.
type CreateFAQInput struct {
	Question  string
	Answer    string
	Category  string
	Tags      []string
	CreatedBy string
}

// UpdateFAQInput carries a partial FAQ update; nil fields stay unchanged.
type UpdateFAQInput struct {
	ID       string
	Question *string
	Answer   *string
	Category *string
	Tags     *[]string
}

// GetFAQInput identifies the FAQ and the viewer for view accounting.
// ViewerKey is an opaque per-viewer key (user id or client address); views
// from the same viewer within the dedup window count once.
type GetFAQInput struct {
	ID        string
	ViewerKey string
}

// VoteInput records a helpful/unhelpful vote by an authenticated user.
type VoteInput struct {
	FAQID   string
	UserID  string
	Helpful bool
}

// VoteResult reports the counters after the vote. Counted is false when the
// user had already voted on this FAQ and nothing changed.
type VoteResult struct {
	HelpfulYes int64
	HelpfulNo  int64
	Counted    bool
}

// FAQService defines use-case operations for published FAQs.
type FAQService interface {
	List(ctx context.Context, input ListFAQsInput) (*ListFAQsResult, error)
	Create(ctx context.Context, input CreateFAQInput) (*domain.FAQ, error)
	Get(ctx context.Context, input GetFAQInput) (*domain.FAQ, error)
	Update(ctx context.Context, input UpdateFAQInput) (*domain.FAQ, error)
	Delete(ctx context.Context, id string) error
	Vote(ctx context.Context, input VoteInput) (*VoteResult, error)
}
