package handler

import "time"

// createFAQRequest is the payload for POST /faqs.
type createFAQRequest struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer"   validate:"required"`
	Category string   `json:"category" validate:"required"`
	Tags     []string `json:"tags"`
}

// updateFAQRequest is the payload for PUT /faqs/:id. All fields are optional;
// only the ones present in the body are applied.
type updateFAQRequest struct {
	Question *string   `json:"question"`
	Answer   *string   `json:"answer"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
}

// voteRequest is the payload for POST /faqs/:id/vote. Helpful is a pointer so
// that a missing field is distinguishable from an explicit false.
type voteRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

type faqResponse struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	Views      int64     `json:"views"`
	HelpfulYes int64     `json:"helpfulYes"`
	HelpfulNo  int64     `json:"helpfulNo"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type listFAQsResponse struct {
	FAQs        []faqResponse `json:"faqs"`
	Categories  []string      `json:"categories"`
	Tags        []string      `json:"tags"`
	TotalFAQs   int64         `json:"totalFaqs"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	HasNextPage bool          `json:"hasNextPage"`
	HasPrevPage bool          `json:"hasPrevPage"`
}

type voteResponse struct {
	HelpfulYes int64 `json:"helpfulYes"`
	HelpfulNo  int64 `json:"helpfulNo"`
	Counted    bool  `json:"counted"`
}
