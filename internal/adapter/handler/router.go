package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/johnquangdev/meeting-summarizer/docs"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// LivenessText is served on GET /
const LivenessText = "AI Meeting Summarizer API (Groq-powered)"

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	summaryHandler *Summary
	emailHandler   *Email
	gatherer       prometheus.Gatherer
}

// NewRouter creates a new router with all handlers. A nil gatherer leaves
// /metrics unregistered.
func NewRouter(cfg *config.Config, summaryHandler *Summary, emailHandler *Email, gatherer prometheus.Gatherer) *Router {
	return &Router{
		cfg:            cfg,
		summaryHandler: summaryHandler,
		emailHandler:   emailHandler,
		gatherer:       gatherer,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.liveness)
	e.GET("/health", rt.healthCheck)

	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	rt.setupAIRoutes(api)
	rt.setupEmailRoutes(api)
}

// setupAIRoutes configures summary routes
func (rt *Router) setupAIRoutes(g *echo.Group) {
	ai := g.Group("/ai")
	if rt.summaryHandler == nil {
		ai.Any("/*", rt.notImplemented)
		return
	}
	ai.POST("/generate", rt.summaryHandler.Generate)
	ai.POST("/save", rt.summaryHandler.Save)
	ai.GET("/:id", rt.summaryHandler.Get)
}

// setupEmailRoutes configures email routes
func (rt *Router) setupEmailRoutes(g *echo.Group) {
	email := g.Group("/email")
	if rt.emailHandler == nil {
		email.Any("/*", rt.notImplemented)
		return
	}
	email.POST("/send", rt.emailHandler.Send)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, common.ErrorResponse{
		OK:    false,
		Error: "This endpoint is not yet implemented",
	})
}

func (rt *Router) liveness(c echo.Context) error {
	return c.String(http.StatusOK, LivenessText)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:      "ok",
		Environment: env,
	})
}
