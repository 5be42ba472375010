package handlers

import (
	"net/http"

	_ "aquascape/docs"
	"aquascape/internal/logger"
	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	authRL   *ipRateLimiter
}

// Options tunes the HTTP layer. Zero values use the defaults.
type Options struct {
	AuthRate  rate.Limit // requests per second per IP on /auth
	AuthBurst int
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Options) *Handler {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.AuthRate <= 0 {
		o.AuthRate = defaultAuthRate
	}
	if o.AuthBurst <= 0 {
		o.AuthBurst = defaultAuthBurst
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		services: services,
		log:      log,
		authRL:   newIPRateLimiter(o.AuthRate, o.AuthBurst),
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metricsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth", h.authRL.middleware)
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerAquariumRoutes(api)
		h.registerHistoryRoutes(api)
		h.registerScheduleRoutes(api)
		h.registerAlertRoutes(api)

		// Operator alert stream; browsers pass ?access_token= instead of a header
		api.GET("/ws/alerts", h.wsAlerts)
	}
}

func (h *Handler) registerAquariumRoutes(api *gin.RouterGroup) {
	aq := api.Group("/aquariums")
	{
		aq.POST("", h.createAquarium)
		aq.GET("", h.listAquariums)
		aq.GET("/:id", h.getAquarium)
		aq.PUT("/:id", h.updateAquarium)
		aq.DELETE("/:id", h.deleteAquarium)
		// Body example: {"volume":2}
		aq.POST("/:id/feed_now", h.feedNow)
		// Body example: {"feeding_volume_grams":2.5,"feeding_period_hours":12}
		aq.POST("/:id/settings", h.updateSettings)
	}
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	sensors := api.Group("/sensor_data")
	{
		sensors.POST("", h.createSensorData)
		sensors.GET("", h.listSensorData)
	}
	feedings := api.Group("/feeding_logs")
	{
		feedings.POST("", h.createFeedingLog)
		feedings.GET("", h.listFeedingLogs)
	}
}

func (h *Handler) registerScheduleRoutes(api *gin.RouterGroup) {
	s := api.Group("/schedules")
	{
		s.POST("", h.createSchedule)
		s.GET("", h.listSchedules)
		s.GET("/:id", h.getSchedule)
		s.PUT("/:id", h.updateSchedule)
		s.DELETE("/:id", h.deleteSchedule)
	}
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	a := api.Group("/alerts")
	{
		a.POST("", h.createAlert)
		a.GET("", h.listAlerts)
		a.DELETE("/:id", h.deleteAlert)
		a.POST("/:id/resolve", h.resolveAlert)
	}
}

// @Summary  Health check
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
