package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slotgate/internal/handler/api"
	"slotgate/internal/handler/middleware"
	"slotgate/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Checkout     *api.CheckoutHandler
	Webhook      *api.WebhookHandler
	Schedule     *api.ScheduleHandler
	Appointment  *api.AppointmentHandler
	Listing      *api.ListingHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	if cfg.Metrics.Enabled {
		engine.Use(middleware.MetricsMiddleware())
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// provider calls this; authenticated by signature, not JWT
	engine.POST("/webhook", h.Webhook.Handle)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.GetDaySlots},
			{Method: http.MethodGet, Path: "/availability/days", Handler: h.Availability.GetDayGrid},
			{Method: http.MethodPost, Path: "/checkout/appointments", Handler: h.Checkout.InitiateAppointment},
			{Method: http.MethodPost, Path: "/checkout/listings", Handler: h.Checkout.InitiateListing},
			{Method: http.MethodGet, Path: "/checkout/confirmation", Handler: h.Checkout.GetConfirmation},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/working-hours", Handler: h.Schedule.ListWorkingHours},
				{Method: http.MethodPut, Path: "/working-hours/:dow", Handler: h.Schedule.UpsertWorkingHours},
				{Method: http.MethodPost, Path: "/blocked-dates", Handler: h.Schedule.BlockDate},
				{Method: http.MethodDelete, Path: "/blocked-dates/:date", Handler: h.Schedule.UnblockDate},
				{Method: http.MethodGet, Path: "/appointments", Handler: h.Appointment.List},
				{Method: http.MethodGet, Path: "/appointments/:id", Handler: h.Appointment.Get},
				{Method: http.MethodPatch, Path: "/appointments/:id", Handler: h.Appointment.UpdateStatus},
				{Method: http.MethodDelete, Path: "/appointments/:id", Handler: h.Appointment.Delete},
				{Method: http.MethodGet, Path: "/listings", Handler: h.Listing.List},
				{Method: http.MethodGet, Path: "/listings/:id", Handler: h.Listing.Get},
				{Method: http.MethodPatch, Path: "/listings/:id", Handler: h.Listing.UpdateStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
