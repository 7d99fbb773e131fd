package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// ProfileHandler serves the authenticated caller's own data.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type profileResponse struct {
	User          userResponse       `json:"user"`
	UserQuestions []questionResponse `json:"userQuestions"`
	HelpfulFAQs   []faqResponse      `json:"helpfulFaqs"`
}

// Get godoc
// @Summary      Get own profile
// @Description  Returns the caller's account, their submitted questions and the FAQs they marked helpful.
// @Tags         profile
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	res, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	questions := make([]questionResponse, 0, len(res.UserQuestions))
	for _, q := range res.UserQuestions {
		questions = append(questions, toQuestionResponse(q))
	}
	faqs := make([]faqResponse, 0, len(res.HelpfulFAQs))
	for _, f := range res.HelpfulFAQs {
		faqs = append(faqs, toFAQResponse(f))
	}

	return c.JSON(http.StatusOK, profileResponse{
		User:          toUserResponse(res.User),
		UserQuestions: questions,
		HelpfulFAQs:   faqs,
	})
}
