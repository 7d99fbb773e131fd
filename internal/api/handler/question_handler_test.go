package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub service
// ---------------------------------------------------------------------------

type stubQuestionService struct {
	submitFn  func(ports.SubmitQuestionInput) (*domain.UserQuestion, error)
	listFn    func(ports.ListQuestionsFilter) ([]*domain.UserQuestion, error)
	answerFn  func(ports.AnswerQuestionInput) (*domain.UserQuestion, error)
	convertFn func(ports.ConvertQuestionInput) (*ports.ConvertResult, error)
}

func (s *stubQuestionService) Submit(_ context.Context, in ports.SubmitQuestionInput) (*domain.UserQuestion, error) {
	return s.submitFn(in)
}

func (s *stubQuestionService) List(_ context.Context, f ports.ListQuestionsFilter) ([]*domain.UserQuestion, error) {
	return s.listFn(f)
}

func (s *stubQuestionService) Answer(_ context.Context, in ports.AnswerQuestionInput) (*domain.UserQuestion, error) {
	return s.answerFn(in)
}

func (s *stubQuestionService) ConvertToFAQ(_ context.Context, in ports.ConvertQuestionInput) (*ports.ConvertResult, error) {
	return s.convertFn(in)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asAdmin(c echo.Context) {
	c.Set("user_id", "admin-1")
	c.Set("email", "admin@example.com")
	c.Set("role", "admin")
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestSubmitHandler_Created(t *testing.T) {
	svc := &stubQuestionService{
		submitFn: func(in ports.SubmitQuestionInput) (*domain.UserQuestion, error) {
			return &domain.UserQuestion{
				ID:        "q1",
				Name:      in.Name,
				Email:     in.Email,
				Question:  in.Question,
				UserID:    in.UserID,
				Status:    domain.StatusPending,
				Tags:      []string{},
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	}
	h := NewQuestionHandler(svc)

	body := `{"name":"Ana","email":"ana@example.com","question":"How do I reset my password?","userId":"tok-1"}`
	c, rec := newTestContext(http.MethodPost, "/user-questions", body)

	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp submitQuestionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.UserQuestion.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %q", resp.UserQuestion.Status)
	}
	if resp.UserQuestion.UserID != "tok-1" {
		t.Fatalf("expected correlation token echoed, got %q", resp.UserQuestion.UserID)
	}
}

func TestSubmitHandler_ValidationRejectsBadEmail(t *testing.T) {
	h := NewQuestionHandler(&stubQuestionService{
		submitFn: func(ports.SubmitQuestionInput) (*domain.UserQuestion, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	body := `{"name":"Ana","email":"not-an-email","question":"q","userId":"tok-1"}`
	c, _ := newTestContext(http.MethodPost, "/user-questions", body)

	err := h.Submit(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestListHandler_PassesFilters(t *testing.T) {
	var got ports.ListQuestionsFilter
	h := NewQuestionHandler(&stubQuestionService{
		listFn: func(f ports.ListQuestionsFilter) ([]*domain.UserQuestion, error) {
			got = f
			return nil, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/user-questions?status=pending&userId=tok-1", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Status != string(domain.StatusPending) || got.UserID != "tok-1" {
		t.Fatalf("filter not forwarded: %+v", got)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", rec.Body.String())
	}
}

// ---------------------------------------------------------------------------
// Answer
// ---------------------------------------------------------------------------

func TestAnswerHandler_RequiresID(t *testing.T) {
	h := NewQuestionHandler(&stubQuestionService{})

	c, _ := newTestContext(http.MethodPut, "/user-questions", `{"answer":"ok"}`)
	asAdmin(c)

	err := h.Answer(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without id, got %v", err)
	}
}

func TestAnswerHandler_RequiresIdentity(t *testing.T) {
	h := NewQuestionHandler(&stubQuestionService{})

	c, _ := newTestContext(http.MethodPut, "/user-questions?id=q1", `{"answer":"ok"}`)

	err := h.Answer(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestAnswerHandler_OK(t *testing.T) {
	var got ports.AnswerQuestionInput
	h := NewQuestionHandler(&stubQuestionService{
		answerFn: func(in ports.AnswerQuestionInput) (*domain.UserQuestion, error) {
			got = in
			now := time.Now().UTC()
			return &domain.UserQuestion{
				ID: in.ID, Status: domain.StatusAnswered, Answer: in.Answer,
				AnsweredBy: in.AdminID, AnsweredAt: &now, Tags: []string{},
			}, nil
		},
	})

	c, rec := newTestContext(http.MethodPut, "/user-questions?id=q1", `{"answer":"Use the portal.","category":"HR"}`)
	asAdmin(c)

	if err := h.Answer(c); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.ID != "q1" || got.AdminID != "admin-1" {
		t.Fatalf("input not forwarded: %+v", got)
	}
	if got.Category == nil || *got.Category != "HR" {
		t.Fatalf("expected category forwarded, got %+v", got.Category)
	}
	if got.Tags != nil {
		t.Fatalf("absent tags must stay nil, got %+v", got.Tags)
	}
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestConvertHandler_Created(t *testing.T) {
	h := NewQuestionHandler(&stubQuestionService{
		convertFn: func(in ports.ConvertQuestionInput) (*ports.ConvertResult, error) {
			return &ports.ConvertResult{
				FAQ: &domain.FAQ{ID: "f1", Question: "q", Answer: "a", Category: "HR", Tags: []string{}},
				Question: &domain.UserQuestion{
					ID: in.ID, Status: domain.StatusConverted, ConvertedToFAQ: "f1", Tags: []string{},
				},
			}, nil
		},
	})

	c, rec := newTestContext(http.MethodPatch, "/user-questions?id=q1", `{"category":"HR"}`)
	asAdmin(c)

	if err := h.Convert(c); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp convertQuestionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FAQ.ID != "f1" || resp.UserQuestion.ConvertedToFAQ != "f1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestConvertHandler_PropagatesConflict(t *testing.T) {
	h := NewQuestionHandler(&stubQuestionService{
		convertFn: func(ports.ConvertQuestionInput) (*ports.ConvertResult, error) {
			return nil, domain.ErrConversionConflict
		},
	})

	c, _ := newTestContext(http.MethodPatch, "/user-questions?id=q1", `{}`)
	asAdmin(c)

	err := h.Convert(c)
	if !errors.Is(err, domain.ErrConversionConflict) {
		t.Fatalf("expected conflict error to propagate, got %v", err)
	}
}
