package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/helpdesk/faq-portal/docs"
	"github.com/helpdesk/faq-portal/internal/api/handler"
	"github.com/helpdesk/faq-portal/internal/api/middleware"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

// Dependencies bundles everything the router needs. Services are constructed
// by the caller so that long-lived infrastructure (the view dispatcher in
// particular) shares the process lifecycle managed in main.
type Dependencies struct {
	FAQService      ports.FAQService
	QuestionService ports.QuestionService
	AuthService     ports.AuthService
	ProfileService  ports.ProfileService

	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("faqportal"))

	authRequired := middleware.Auth(deps.JWTSecret)
	authOptional := middleware.OptionalAuth(deps.JWTSecret)
	adminOnly := middleware.RBAC("admin")

	// --- Handlers ---
	faqHandler := handler.NewFAQHandler(deps.FAQService)
	questionHandler := handler.NewQuestionHandler(deps.QuestionService)
	authHandler := handler.NewAuthHandler(deps.AuthService)
	profileHandler := handler.NewProfileHandler(deps.ProfileService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- FAQ catalog ---
	e.GET("/faqs", faqHandler.List)
	e.POST("/faqs", faqHandler.Create, authRequired, adminOnly)
	e.GET("/faqs/:id", faqHandler.Get, authOptional)
	e.PUT("/faqs/:id", faqHandler.Update, authRequired, adminOnly)
	e.DELETE("/faqs/:id", faqHandler.Delete, authRequired, adminOnly)
	e.POST("/faqs/:id/vote", faqHandler.Vote, authRequired)

	// --- User questions ---
	e.POST("/user-questions", questionHandler.Submit)
	e.GET("/user-questions", questionHandler.List)
	e.PUT("/user-questions", questionHandler.Answer, authRequired, adminOnly)
	e.PATCH("/user-questions", questionHandler.Convert, authRequired, adminOnly)

	// --- Profile ---
	e.GET("/profile", profileHandler.Get, authRequired)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
