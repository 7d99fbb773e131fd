package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// pagedFAQRepo records the filter it was called with and serves a fixed total,
// so pagination math can be asserted without a real store.
type pagedFAQRepo struct {
	stubFAQStore
	total      int64
	lastFilter ports.ListFAQsFilter
	categories []string
	tags       []string
}

func (r *pagedFAQRepo) List(_ context.Context, f ports.ListFAQsFilter) ([]*domain.FAQ, int64, error) {
	r.lastFilter = f
	return nil, r.total, nil
}

func (r *pagedFAQRepo) Facets(_ context.Context) ([]string, []string, error) {
	return r.categories, r.tags, nil
}

type stubUserStore struct {
	byID map[string]*domain.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byID: make(map[string]*domain.User)}
}

func (r *stubUserStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	if clone.ID == "" {
		clone.ID = "u" + u.Email
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserStore) AddHelpfulVote(_ context.Context, userID, faqID string) (bool, error) {
	u, ok := r.byID[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	for _, id := range u.HelpfulVotes {
		if id == faqID {
			return false, nil
		}
	}
	u.HelpfulVotes = append(u.HelpfulVotes, faqID)
	return true, nil
}

type stubDedup struct {
	first bool
	err   error
	calls int
}

func (d *stubDedup) FirstView(_ context.Context, _, _ string) (bool, error) {
	d.calls++
	return d.first, d.err
}

type stubQueue struct {
	enqueued []string
}

func (q *stubQueue) Enqueue(faqID string) {
	q.enqueued = append(q.enqueued, faqID)
}

func newFAQService(repo ports.FAQRepository, users ports.UserRepository, dedup ViewDedup, queue ViewQueue) *FAQService {
	return NewFAQService(repo, users, dedup, queue, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestList_DefaultsAndPaginationMath(t *testing.T) {
	repo := &pagedFAQRepo{total: 13}
	svc := newFAQService(repo, newStubUserStore(), &stubDedup{}, &stubQueue{})

	res, err := svc.List(context.Background(), ports.ListFAQsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != 6 {
		t.Fatalf("expected defaults page=1 limit=6, got page=%d limit=%d", repo.lastFilter.Page, repo.lastFilter.Limit)
	}
	if res.TotalPages != 3 { // ceil(13/6)
		t.Fatalf("expected 3 pages, got %d", res.TotalPages)
	}
	if !res.HasNextPage || res.HasPrevPage {
		t.Fatalf("expected next=true prev=false on page 1, got next=%v prev=%v", res.HasNextPage, res.HasPrevPage)
	}
}

func TestList_LastPageFlags(t *testing.T) {
	repo := &pagedFAQRepo{total: 13}
	svc := newFAQService(repo, newStubUserStore(), &stubDedup{}, &stubQueue{})

	res, err := svc.List(context.Background(), ports.ListFAQsInput{Page: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.HasNextPage || !res.HasPrevPage {
		t.Fatalf("expected next=false prev=true on last page, got next=%v prev=%v", res.HasNextPage, res.HasPrevPage)
	}
}

func TestList_EmptyCollectionStillOnePage(t *testing.T) {
	repo := &pagedFAQRepo{total: 0}
	svc := newFAQService(repo, newStubUserStore(), &stubDedup{}, &stubQueue{})

	res, err := svc.List(context.Background(), ports.ListFAQsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.TotalPages != 1 {
		t.Fatalf("expected totalPages floor of 1, got %d", res.TotalPages)
	}
	if res.HasNextPage {
		t.Fatalf("expected no next page on empty collection")
	}
}

func TestList_LimitCappedAndBadPageClamped(t *testing.T) {
	repo := &pagedFAQRepo{total: 100}
	svc := newFAQService(repo, newStubUserStore(), &stubDedup{}, &stubQueue{})

	if _, err := svc.List(context.Background(), ports.ListFAQsInput{Page: -4, Limit: 500}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastFilter.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", repo.lastFilter.Page)
	}
	if repo.lastFilter.Limit != 50 {
		t.Fatalf("expected limit capped at 50, got %d", repo.lastFilter.Limit)
	}
}

func TestList_AllSentinelDisablesFilters(t *testing.T) {
	repo := &pagedFAQRepo{total: 1}
	svc := newFAQService(repo, newStubUserStore(), &stubDedup{}, &stubQueue{})

	if _, err := svc.List(context.Background(), ports.ListFAQsInput{Category: "all", Tag: "All"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastFilter.Category != "" || repo.lastFilter.Tag != "" {
		t.Fatalf("expected 'all' to clear filters, got category=%q tag=%q", repo.lastFilter.Category, repo.lastFilter.Tag)
	}
}

func TestList_FacetsComeFromWholeCollection(t *testing.T) {
	repo := &pagedFAQRepo{
		total:      2,
		categories: []string{"Benefits", "HR", "IT"},
		tags:       []string{"laptop", "vacation"},
	}
	svc := newFAQService(repo, newStubUserStore(), &stubDedup{}, &stubQueue{})

	res, err := svc.List(context.Background(), ports.ListFAQsInput{Category: "HR"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Categories) != 3 || len(res.Tags) != 2 {
		t.Fatalf("expected facets over the whole collection, got %v / %v", res.Categories, res.Tags)
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreateFAQ_Validation(t *testing.T) {
	svc := newFAQService(newStubFAQStore(), newStubUserStore(), &stubDedup{}, &stubQueue{})

	if _, err := svc.Create(context.Background(), ports.CreateFAQInput{
		Question: "q", Answer: "a", Category: "c",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden without creator, got %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.CreateFAQInput{
		Question: "q", Answer: " ", Category: "c", CreatedBy: "admin-1",
	}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for blank answer, got %v", err)
	}
}

func TestCreateFAQ_NilTagsBecomeEmptySlice(t *testing.T) {
	store := newStubFAQStore()
	svc := newFAQService(store, newStubUserStore(), &stubDedup{}, &stubQueue{})

	faq, err := svc.Create(context.Background(), ports.CreateFAQInput{
		Question: "How do I connect to the VPN?", Answer: "Install the client.", Category: "IT", CreatedBy: "admin-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if faq.Tags == nil || len(faq.Tags) != 0 {
		t.Fatalf("expected empty tag slice, got %#v", faq.Tags)
	}
}

// ---------------------------------------------------------------------------
// Get (view accounting)
// ---------------------------------------------------------------------------

func seedFAQ(t *testing.T, store *stubFAQStore) *domain.FAQ {
	t.Helper()
	faq, err := store.Create(context.Background(), &domain.FAQ{
		Question: "How do I reset my password?", Answer: "Use the self-service page.", Category: "IT", Tags: []string{},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return faq
}

func TestGet_FirstViewEnqueuesIncrement(t *testing.T) {
	store := newStubFAQStore()
	faq := seedFAQ(t, store)
	queue := &stubQueue{}
	svc := newFAQService(store, newStubUserStore(), &stubDedup{first: true}, queue)

	if _, err := svc.Get(context.Background(), ports.GetFAQInput{ID: faq.ID, ViewerKey: "viewer-1"}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0] != faq.ID {
		t.Fatalf("expected one enqueued increment for %q, got %#v", faq.ID, queue.enqueued)
	}
}

func TestGet_RepeatViewNotCounted(t *testing.T) {
	store := newStubFAQStore()
	faq := seedFAQ(t, store)
	queue := &stubQueue{}
	svc := newFAQService(store, newStubUserStore(), &stubDedup{first: false}, queue)

	if _, err := svc.Get(context.Background(), ports.GetFAQInput{ID: faq.ID, ViewerKey: "viewer-1"}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(queue.enqueued) != 0 {
		t.Fatalf("expected no enqueued increment, got %#v", queue.enqueued)
	}
}

func TestGet_DedupFailureCountsAnyway(t *testing.T) {
	store := newStubFAQStore()
	faq := seedFAQ(t, store)
	queue := &stubQueue{}
	dedup := &stubDedup{err: errors.New("redis down")}
	svc := newFAQService(store, newStubUserStore(), dedup, queue)

	if _, err := svc.Get(context.Background(), ports.GetFAQInput{ID: faq.ID, ViewerKey: "viewer-1"}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(queue.enqueued) != 1 {
		t.Fatalf("expected increment despite dedup failure, got %#v", queue.enqueued)
	}
}

func TestGet_NoViewerKeySkipsAccounting(t *testing.T) {
	store := newStubFAQStore()
	faq := seedFAQ(t, store)
	queue := &stubQueue{}
	dedup := &stubDedup{first: true}
	svc := newFAQService(store, newStubUserStore(), dedup, queue)

	if _, err := svc.Get(context.Background(), ports.GetFAQInput{ID: faq.ID}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if dedup.calls != 0 || len(queue.enqueued) != 0 {
		t.Fatalf("expected no view accounting without a viewer key")
	}
}

func TestGet_UnknownFAQ(t *testing.T) {
	svc := newFAQService(newStubFAQStore(), newStubUserStore(), &stubDedup{}, &stubQueue{})

	_, err := svc.Get(context.Background(), ports.GetFAQInput{ID: "missing"})
	if !errors.Is(err, domain.ErrFAQNotFound) {
		t.Fatalf("expected ErrFAQNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Vote
// ---------------------------------------------------------------------------

func TestVote_HelpfulCountsOncePerUser(t *testing.T) {
	store := newStubFAQStore()
	faq := seedFAQ(t, store)
	users := newStubUserStore()
	users.byID["user-1"] = &domain.User{ID: "user-1", Email: "u@example.com", HelpfulVotes: []string{}}
	svc := newFAQService(store, users, &stubDedup{}, &stubQueue{})

	first, err := svc.Vote(context.Background(), ports.VoteInput{FAQID: faq.ID, UserID: "user-1", Helpful: true})
	if err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if !first.Counted || first.HelpfulYes != 1 {
		t.Fatalf("expected first vote counted with helpfulYes=1, got %+v", first)
	}

	second, err := svc.Vote(context.Background(), ports.VoteInput{FAQID: faq.ID, UserID: "user-1", Helpful: true})
	if err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if second.Counted {
		t.Fatalf("expected repeat vote not counted")
	}
	if second.HelpfulYes != 1 {
		t.Fatalf("expected counter unchanged at 1, got %d", second.HelpfulYes)
	}
}

func TestVote_UnhelpfulAlwaysIncrements(t *testing.T) {
	store := newStubFAQStore()
	faq := seedFAQ(t, store)
	users := newStubUserStore()
	users.byID["user-1"] = &domain.User{ID: "user-1", HelpfulVotes: []string{}}
	svc := newFAQService(store, users, &stubDedup{}, &stubQueue{})

	for i := 1; i <= 2; i++ {
		res, err := svc.Vote(context.Background(), ports.VoteInput{FAQID: faq.ID, UserID: "user-1", Helpful: false})
		if err != nil {
			t.Fatalf("vote %d: %v", i, err)
		}
		if res.HelpfulNo != int64(i) {
			t.Fatalf("expected helpfulNo=%d, got %d", i, res.HelpfulNo)
		}
	}
}

func TestVote_UnknownFAQ(t *testing.T) {
	users := newStubUserStore()
	users.byID["user-1"] = &domain.User{ID: "user-1"}
	svc := newFAQService(newStubFAQStore(), users, &stubDedup{}, &stubQueue{})

	_, err := svc.Vote(context.Background(), ports.VoteInput{FAQID: "missing", UserID: "user-1", Helpful: true})
	if !errors.Is(err, domain.ErrFAQNotFound) {
		t.Fatalf("expected ErrFAQNotFound, got %v", err)
	}
}
