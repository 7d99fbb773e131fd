package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

const (
	defaultPageSize = 6
	maxPageSize     = 50
)

// ViewDedup suppresses repeat views from the same viewer inside a time window.
type ViewDedup interface {
	// FirstView records the viewer/FAQ pair and reports whether this is the
	// first view within the dedup window.
	FirstView(ctx context.Context, viewerKey, faqID string) (bool, error)
}

// ViewQueue applies view increments off the request path.
type ViewQueue interface {
	Enqueue(faqID string)
}

// FAQService implements listing, CRUD, voting, and view accounting for
// published FAQs.
type FAQService struct {
	repo   ports.FAQRepository
	users  ports.UserRepository
	dedup  ViewDedup
	views  ViewQueue
	logger zerolog.Logger
}

func NewFAQService(repo ports.FAQRepository, users ports.UserRepository, dedup ViewDedup, views ViewQueue, logger zerolog.Logger) *FAQService {
	return &FAQService{repo: repo, users: users, dedup: dedup, views: views, logger: logger}
}

// List builds the store query from the raw listing parameters and returns one
// page of FAQs together with facets and pagination metadata. Facets always
// cover the whole collection so filter dropdowns show every known value
// regardless of the active filter.
func (s *FAQService) List(ctx context.Context, input ports.ListFAQsInput) (*ports.ListFAQsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ports.ListFAQsFilter{
		Search:   strings.TrimSpace(input.Search),
		Category: normalizeFacet(input.Category),
		Tag:      normalizeFacet(input.Tag),
		Sort:     input.Sort,
		Page:     page,
		Limit:    limit,
	}

	faqs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list faqs")
		return nil, err
	}

	categories, tags, err := s.repo.Facets(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute facets")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return &ports.ListFAQsResult{
		FAQs:        faqs,
		Categories:  categories,
		Tags:        tags,
		TotalFAQs:   total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

// Create publishes a directly authored FAQ attributed to the calling admin.
func (s *FAQService) Create(ctx context.Context, input ports.CreateFAQInput) (*domain.FAQ, error) {
	if input.CreatedBy == "" {
		return nil, domain.ErrForbidden
	}
	question := strings.TrimSpace(input.Question)
	answer := strings.TrimSpace(input.Answer)
	category := strings.TrimSpace(input.Category)
	if question == "" || answer == "" || category == "" {
		return nil, domain.ErrMissingFields
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	faq, err := s.repo.Create(ctx, &domain.FAQ{
		Question:  question,
		Answer:    answer,
		Category:  category,
		Tags:      tags,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create faq")
		return nil, err
	}

	s.logger.Info().Str("faq_id", faq.ID).Str("admin_id", input.CreatedBy).Msg("faq created")
	return faq, nil
}

// Get fetches a single FAQ and records a view. Views from the same viewer
// within the dedup window count once; the increment itself is applied
// asynchronously and is best-effort.
func (s *FAQService) Get(ctx context.Context, input ports.GetFAQInput) (*domain.FAQ, error) {
	faq, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.ViewerKey != "" {
		first, err := s.dedup.FirstView(ctx, input.ViewerKey, faq.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("faq_id", faq.ID).Msg("view dedup check failed, counting anyway")
			first = true
		}
		if first {
			s.views.Enqueue(faq.ID)
		}
	}

	return faq, nil
}

// Update applies a partial update; absent fields stay unchanged.
func (s *FAQService) Update(ctx context.Context, input ports.UpdateFAQInput) (*domain.FAQ, error) {
	faq, err := s.repo.Update(ctx, input.ID, ports.FAQUpdate{
		Question: input.Question,
		Answer:   input.Answer,
		Category: input.Category,
		Tags:     input.Tags,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("faq_id", faq.ID).Msg("faq updated")
	return faq, nil
}

// Delete removes a published FAQ.
func (s *FAQService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("faq_id", id).Msg("faq deleted")
	return nil
}

// Vote records a helpful/unhelpful vote. A helpful vote counts at most once
// per user; repeats return the current counters with Counted=false.
// Unhelpful votes only bump the counter, mirroring the portal's behaviour of
// tracking only helpful votes per user.
func (s *FAQService) Vote(ctx context.Context, input ports.VoteInput) (*ports.VoteResult, error) {
	if input.UserID == "" {
		return nil, domain.ErrForbidden
	}

	faq, err := s.repo.FindByID(ctx, input.FAQID)
	if err != nil {
		return nil, err
	}

	if !input.Helpful {
		updated, err := s.repo.IncrementVote(ctx, faq.ID, false)
		if err != nil {
			return nil, err
		}
		return &ports.VoteResult{HelpfulYes: updated.HelpfulYes, HelpfulNo: updated.HelpfulNo, Counted: true}, nil
	}

	added, err := s.users.AddHelpfulVote(ctx, input.UserID, faq.ID)
	if err != nil {
		return nil, err
	}
	if !added {
		return &ports.VoteResult{HelpfulYes: faq.HelpfulYes, HelpfulNo: faq.HelpfulNo, Counted: false}, nil
	}

	updated, err := s.repo.IncrementVote(ctx, faq.ID, true)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("faq_id", faq.ID).Str("user_id", input.UserID).Msg("helpful vote recorded")
	return &ports.VoteResult{HelpfulYes: updated.HelpfulYes, HelpfulNo: updated.HelpfulNo, Counted: true}, nil
}

// normalizeFacet maps the "all" sentinel (and blanks) to no filter.
func normalizeFacet(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
