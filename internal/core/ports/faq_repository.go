package ports

import (
	"context"

	"github.com/helpdesk/faq-portal/internal/core/domain"
)

// ListFAQsFilter carries all query parameters for listing published FAQs.
type ListFAQsFilter struct {
	Search   string // optional: case-insensitive match on question, answer, or any tag
	Category string // optional: exact category match ("" or "all" = no filter)
	Tag      string // optional: tag membership ("" or "all" = no filter)
	Sort     string // "helpful", "views", anything else = newest first
	Page     int    // 1-based
	Limit    int    // rows per page
}

// FAQUpdate describes a partial update; nil fields are left unchanged.
type FAQUpdate struct {
	Question *string
	Answer   *string
	Category *string
	Tags     *[]string
}

// FAQRepository defines persistence operations for published FAQs.
type FAQRepository interface {
	Create(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error)
	FindByID(ctx context.Context, id string) (*domain.FAQ, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.FAQ, error)
	// List returns a page of FAQs matching filter and the total match count.
	List(ctx context.Context, filter ListFAQsFilter) ([]*domain.FAQ, int64, error)
	// Facets returns the distinct categories and tags across the ENTIRE
	// collection, ignoring any active filter. Filter dropdowns always show
	// every known value.
	Facets(ctx context.Context) (categories []string, tags []string, err error)
	Update(ctx context.Context, id string, upd FAQUpdate) (*domain.FAQ, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	// IncrementVote bumps the helpful yes/no counter and returns the updated FAQ.
	IncrementVote(ctx context.Context, id string, helpful bool) (*domain.FAQ, error)
}
