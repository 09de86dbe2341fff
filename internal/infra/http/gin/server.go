package ginserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/infra/config"
	"frontdesk/internal/infra/obs"
)

type Handlers struct {
	Logger *slog.Logger

	Auth    AuthHandler
	Booking BookingHandler
	Room    RoomHandler
	Guest   GuestHandler
	Public  PublicHandler
	Report  ReportHandler

	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, health obs.Health, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if h.Logger != nil {
		h.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obs.RequestID())
	router.Use(obs.AccessLog(h.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Live)
	router.GET("/readyz", health.Ready)

	api := router.Group("/api/v1")

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me)
	api.POST("/auth/register", h.Auth.Register)

	api.GET("/public/reservations/:number", h.Public.LookupBooking)

	api.POST("/bookings", h.Booking.Create)
	api.GET("/bookings", h.Booking.List)
	api.GET("/bookings/arrivals", h.Booking.Arrivals)
	api.GET("/bookings/departures", h.Booking.Departures)
	api.GET("/bookings/:id", h.Booking.Get)
	api.PUT("/bookings/:id", h.Booking.Update)
	api.POST("/bookings/:id/checkin", h.Booking.CheckIn)
	api.POST("/bookings/:id/checkout", h.Booking.CheckOut)
	api.POST("/bookings/:id/cancel", h.Booking.Cancel)
	api.POST("/bookings/:id/no-show", h.Booking.NoShow)
	api.DELETE("/bookings/:id", h.Booking.Cancel)

	api.POST("/rooms", h.Room.Create)
	api.GET("/rooms", h.Room.List)
	api.GET("/rooms/available", h.Room.Available)
	api.GET("/rooms/:id", h.Room.Get)
	api.PUT("/rooms/:id", h.Room.Update)
	api.PATCH("/rooms/:id/status", h.Room.SetStatus)
	api.POST("/rooms/:id/photos", h.Room.UploadPhoto)
	api.DELETE("/rooms/:id", h.Room.Delete)

	api.POST("/guests", h.Guest.Create)
	api.GET("/guests", h.Guest.List)
	api.GET("/guests/:id", h.Guest.Get)
	api.PUT("/guests/:id", h.Guest.Update)
	api.DELETE("/guests/:id", h.Guest.Delete)

	api.GET("/reports/occupancy", h.Report.Occupancy)
	api.GET("/reports/revenue", h.Report.Revenue)

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
