package http

import (
	"github.com/gin-gonic/gin"

	"ferrybackend/internal/http/handlers"
	"ferrybackend/internal/http/middleware"
)

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	r.GET("/health", handlers.Health)
	r.GET("/health/db", handlers.DBCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		api.GET("/sailings", handlers.SearchSailings)
		api.GET("/sailings/:id", handlers.GetSailing)

		bookings := api.Group("/bookings")
		{
			bookings.POST("/quote", handlers.QuoteBooking)
			bookings.POST("", handlers.SubmitBooking)
			bookings.GET("/:id", handlers.GetBooking)
			bookings.GET("/:id/confirmation", handlers.BookingConfirmationPDF)
			bookings.POST("/:id/cabins", middleware.RequireAuth(), handlers.AddCabinToBooking)
		}

		alerts := api.Group("/alerts", middleware.RequireAuth())
		{
			alerts.POST("", handlers.CreateAlert)
			alerts.GET("", handlers.ListAlerts)
			alerts.GET("/counts", handlers.AlertCounts)
			alerts.POST("/:id/cancel", handlers.CancelAlert)
			alerts.POST("/:id/fulfill", handlers.FulfillAlert)
			alerts.POST("/:id/availability", handlers.SignalAlertAvailability)
			alerts.DELETE("/:id", handlers.RemoveAlert)
		}
	}

	return r
}
