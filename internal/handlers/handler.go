package handlers

import (
	"time"

	"kitchen_lab/internal/logger"
	"kitchen_lab/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	streamInterval time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithStreamInterval sets the default websocket push interval.
func WithStreamInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.streamInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, streamInterval: defaultInterval}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Snapshot stream for the display, same port.
	router.GET("/ws", h.loopbackOnly, h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.loopbackOnly)
	{
		api.GET("/state", h.getState)
		api.GET("/catalog", h.getCatalog)
		api.GET("/notifications", h.getNotifications)

		h.registerScaleRoutes(api)
		h.registerPowerRoutes(api)
		h.registerModeRoutes(api)
		h.registerTimerRoutes(api)
	}
}

func (h *Handler) registerScaleRoutes(api *gin.RouterGroup) {
	scale := api.Group("/scale")
	{
		// Body example: {"channel":"main","value":512.4}
		scale.POST("/raw", h.ingestRaw)
		scale.POST("/tare", h.tare)
		scale.POST("/tare-all", h.tareAll)
	}
}

func (h *Handler) registerPowerRoutes(api *gin.RouterGroup) {
	power := api.Group("/power")
	{
		power.POST("/toggle", h.togglePower)
		power.POST("/mute", h.toggleMute)
		power.POST("/standby", h.setStandby)
	}
}

func (h *Handler) registerModeRoutes(api *gin.RouterGroup) {
	api.POST("/mode/advance", h.advanceMode)

	bread := api.Group("/bread")
	{
		bread.POST("/recipe", h.selectRecipe)
		bread.POST("/base", h.setBase)
	}

	diet := api.Group("/diet")
	{
		diet.POST("/food", h.addFood)
		diet.POST("/clear", h.clearLedger)
	}
}

func (h *Handler) registerTimerRoutes(api *gin.RouterGroup) {
	timer := api.Group("/timer")
	{
		timer.POST("/count-up", h.startCountUp)
		// Body example: {"minutes":5}
		timer.POST("/countdown", h.startCountdown)
		timer.POST("/pause", h.pauseTimer)
		timer.POST("/resume", h.resumeTimer)
		timer.POST("/reset", h.resetTimer)
		timer.POST("/menu", h.toggleTimerMenu)
	}
}
