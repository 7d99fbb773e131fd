package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

func toFAQResponse(f *domain.FAQ) faqResponse {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return faqResponse{
		ID:         f.ID,
		Question:   f.Question,
		Answer:     f.Answer,
		Category:   f.Category,
		Tags:       tags,
		Views:      f.Views,
		HelpfulYes: f.HelpfulYes,
		HelpfulNo:  f.HelpfulNo,
		CreatedBy:  f.CreatedBy,
		CreatedAt:  f.CreatedAt,
	}
}

func toListFAQsResponse(res *ports.ListFAQsResult) listFAQsResponse {
	faqs := make([]faqResponse, 0, len(res.FAQs))
	for _, f := range res.FAQs {
		faqs = append(faqs, toFAQResponse(f))
	}
	categories := res.Categories
	if categories == nil {
		categories = []string{}
	}
	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	return listFAQsResponse{
		FAQs:        faqs,
		Categories:  categories,
		Tags:        tags,
		TotalFAQs:   res.TotalFAQs,
		TotalPages:  res.TotalPages,
		CurrentPage: res.CurrentPage,
		HasNextPage: res.HasNextPage,
		HasPrevPage: res.HasPrevPage,
	}
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or not a valid number.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
