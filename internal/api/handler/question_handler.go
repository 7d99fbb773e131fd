package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk/faq-portal/internal/api/metrics"
	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// QuestionHandler exposes the user-question lifecycle over HTTP.
type QuestionHandler struct {
	service ports.QuestionService
}

func NewQuestionHandler(service ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// Submit godoc
// @Summary      Submit a question
// @Description  Accepts a free-text question from an end user. The question starts in pending state.
// @Tags         user-questions
// @Accept       json
// @Produce      json
// @Param        request  body  submitQuestionRequest  true  "Question fields"
// @Success      201  {object}  submitQuestionResponse
// @Failure      400  {object}  map[string]string
// @Router       /user-questions [post]
func (h *QuestionHandler) Submit(c echo.Context) error {
	var req submitQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q, err := h.service.Submit(c.Request().Context(), ports.SubmitQuestionInput{
		Name:     req.Name,
		Email:    req.Email,
		Question: req.Question,
		UserID:   req.UserID,
	})
	if err != nil {
		return err
	}

	metrics.QuestionsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, submitQuestionResponse{
		Message:      "question submitted",
		UserQuestion: toQuestionResponse(q),
	})
}

// List godoc
// @Summary      List questions
// @Description  Lists submitted questions, newest first, optionally filtered by status and/or the submitter's correlation token.
// @Tags         user-questions
// @Produce      json
// @Param        status  query  string  false  "Filter by lifecycle status: pending, answered or converted"
// @Param        userId  query  string  false  "Filter by submitter correlation token"
// @Success      200  {array}  questionResponse
// @Router       /user-questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	questions, err := h.service.List(c.Request().Context(), ports.ListQuestionsFilter{
		Status: c.QueryParam("status"),
		UserID: c.QueryParam("userId"),
	})
	if err != nil {
		return err
	}

	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return c.JSON(http.StatusOK, out)
}

// Answer godoc
// @Summary      Answer a question
// @Description  Records or replaces the admin answer for a question. Converted questions can no longer be answered.
// @Tags         user-questions
// @Accept       json
// @Produce      json
// @Param        id       query  string                 true  "Question id"
// @Param        request  body   answerQuestionRequest  true  "Answer fields"
// @Success      200  {object}  questionResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /user-questions [put]
func (h *QuestionHandler) Answer(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	var req answerQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q, err := h.service.Answer(c.Request().Context(), ports.AnswerQuestionInput{
		ID:       id,
		Answer:   req.Answer,
		Category: req.Category,
		Tags:     req.Tags,
		AdminID:  adminID,
	})
	if err != nil {
		return err
	}

	metrics.QuestionsAnsweredTotal.Inc()
	return c.JSON(http.StatusOK, toQuestionResponse(q))
}

// Convert godoc
// @Summary      Convert a question into a FAQ
// @Description  Promotes an answered question to the published FAQ catalog and marks the question converted.
// @Tags         user-questions
// @Accept       json
// @Produce      json
// @Param        id       query  string                  true   "Question id"
// @Param        request  body   convertQuestionRequest  false  "Category/tags overrides"
// @Success      201  {object}  convertQuestionResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Security     BearerAuth
// @Router       /user-questions [patch]
func (h *QuestionHandler) Convert(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	var req convertQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.service.ConvertToFAQ(c.Request().Context(), ports.ConvertQuestionInput{
		ID:       id,
		Category: req.Category,
		Tags:     req.Tags,
		AdminID:  adminID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConversionConflict) {
			metrics.ConversionConflictsTotal.Inc()
		}
		return err
	}

	metrics.QuestionsConvertedTotal.Inc()
	metrics.FAQsCreatedTotal.WithLabelValues("conversion").Inc()
	return c.JSON(http.StatusCreated, convertQuestionResponse{
		FAQ:          toFAQResponse(res.FAQ),
		UserQuestion: toQuestionResponse(res.Question),
	})
}
