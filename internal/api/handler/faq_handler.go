package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk/faq-portal/internal/api/metrics"
	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// FAQHandler exposes the published FAQ catalog over HTTP.
type FAQHandler struct {
	service ports.FAQService
}

func NewFAQHandler(service ports.FAQService) *FAQHandler {
	return &FAQHandler{service: service}
}

// List godoc
// @Summary      List published FAQs
// @Description  Paged FAQ listing with optional search, category/tag filters and sorting. Facets cover the whole catalog regardless of filters.
// @Tags         faqs
// @Produce      json
// @Param        search    query  string  false  "Case-insensitive substring match over question, answer and tags"
// @Param        category  query  string  false  "Category filter; 'all' disables the filter"
// @Param        tags      query  string  false  "Tag filter; 'all' disables the filter"
// @Param        sort      query  string  false  "Sort order: newest (default), helpful or views"
// @Param        page      query  int     false  "Page number, 1-based"
// @Param        limit     query  int     false  "Page size, capped at 50"
// @Success      200  {object}  listFAQsResponse
// @Router       /faqs [get]
func (h *FAQHandler) List(c echo.Context) error {
	input := ports.ListFAQsInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Tag:      c.QueryParam("tags"),
		Sort:     c.QueryParam("sort"),
		Page:     queryInt(c, "page", 0),
		Limit:    queryInt(c, "limit", 0),
	}

	res, err := h.service.List(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListFAQsResponse(res))
}

// Create godoc
// @Summary      Create a FAQ
// @Description  Directly authors a new FAQ entry. Admin only.
// @Tags         faqs
// @Accept       json
// @Produce      json
// @Param        request  body  createFAQRequest  true  "FAQ fields"
// @Success      201  {object}  faqResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /faqs [post]
func (h *FAQHandler) Create(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createFAQRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	faq, err := h.service.Create(c.Request().Context(), ports.CreateFAQInput{
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Tags:      req.Tags,
		CreatedBy: adminID,
	})
	if err != nil {
		return err
	}

	metrics.FAQsCreatedTotal.WithLabelValues("direct").Inc()
	return c.JSON(http.StatusCreated, toFAQResponse(faq))
}

// Get godoc
// @Summary      Get a FAQ by id
// @Description  Returns a single FAQ and records a deduplicated view for the caller.
// @Tags         faqs
// @Produce      json
// @Param        id  path  string  true  "FAQ id"
// @Success      200  {object}  faqResponse
// @Failure      404  {object}  map[string]string
// @Router       /faqs/{id} [get]
func (h *FAQHandler) Get(c echo.Context) error {
	// Prefer the authenticated identity for view dedup; anonymous readers
	// are keyed by client address.
	viewerKey, _ := c.Get("user_id").(string)
	if viewerKey == "" {
		viewerKey = c.RealIP()
	}

	faq, err := h.service.Get(c.Request().Context(), ports.GetFAQInput{
		ID:        c.Param("id"),
		ViewerKey: viewerKey,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFAQResponse(faq))
}

// Update godoc
// @Summary      Update a FAQ
// @Description  Partially updates a FAQ; absent fields stay unchanged. Admin only.
// @Tags         faqs
// @Accept       json
// @Produce      json
// @Param        id       path  string            true  "FAQ id"
// @Param        request  body  updateFAQRequest  true  "Fields to update"
// @Success      200  {object}  faqResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /faqs/{id} [put]
func (h *FAQHandler) Update(c echo.Context) error {
	var req updateFAQRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	faq, err := h.service.Update(c.Request().Context(), ports.UpdateFAQInput{
		ID:       c.Param("id"),
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFAQResponse(faq))
}

// Delete godoc
// @Summary      Delete a FAQ
// @Tags         faqs
// @Param        id  path  string  true  "FAQ id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /faqs/{id} [delete]
func (h *FAQHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Vote godoc
// @Summary      Vote on a FAQ
// @Description  Records a helpful/unhelpful vote. A user's helpful vote counts at most once per FAQ.
// @Tags         faqs
// @Accept       json
// @Produce      json
// @Param        id       path  string       true  "FAQ id"
// @Param        request  body  voteRequest  true  "Vote direction"
// @Success      200  {object}  voteResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /faqs/{id}/vote [post]
func (h *FAQHandler) Vote(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Vote(c.Request().Context(), ports.VoteInput{
		FAQID:   c.Param("id"),
		UserID:  userID,
		Helpful: *req.Helpful,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The token outlived the account; report it as an auth problem
			// rather than a missing resource.
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		return err
	}

	return c.JSON(http.StatusOK, voteResponse{
		HelpfulYes: res.HelpfulYes,
		HelpfulNo:  res.HelpfulNo,
		Counted:    res.Counted,
	})
}
