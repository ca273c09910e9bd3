package routes

import (
	"time"

	"queuedesk/config"
	"queuedesk/handlers"
	"queuedesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAttentionRoutes registers ticket endpoints. Visitors create and
// follow their ticket anonymously; every queue operation needs an operator
// token.
func RegisterAttentionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/attention")
	{
		public := api.Group("")
		public.Use(middleware.JWTAuthMiddleware(true))
		public.POST("", hb.Attention.CreateAttention)
		public.GET("/:id", hb.Attention.GetAttention)
		public.GET("/details/:id", hb.Attention.GetAttentionDetails)
		public.PATCH("/cancel/:id", hb.Attention.Cancel)
		public.PATCH("/notification-data/:id", hb.Attention.SaveNotificationData)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(false))
		protected.PATCH("/attend/:number/queue/:queueId", hb.Attention.Attend)
		protected.PATCH("/skip/:number/queue/:queueId", hb.Attention.Skip)
		protected.PATCH("/reactivate/:number/queue/:queueId", hb.Attention.Reactivate)
		protected.PATCH("/finish/:id", hb.Attention.Finish)
		protected.PATCH("/payment-confirm/:id", hb.Attention.PaymentConfirm)
		protected.PATCH("/transfer/:id", hb.Attention.Transfer)
		protected.PATCH("/no-device/:id", hb.Attention.SetNoDevice)
		protected.POST("/cancel-all", hb.Attention.CancelAll)
		protected.POST("/survey-post-attention", hb.Attention.SurveyPostAttention)
	}
}

// RegisterBookingRoutes registers reservation endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		public := api.Group("")
		public.Use(middleware.JWTAuthMiddleware(true))
		public.POST("", hb.Booking.CreateBooking)
		public.GET("/:id", hb.Booking.GetBooking)
		public.GET("/details/:id", hb.Booking.GetBookingDetails)
		public.PATCH("/cancel/:id", hb.Booking.Cancel)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(false))
		protected.GET("/queue/:queueId", hb.Booking.GetPendingByQueue)
		protected.GET("/commerce/:commerceId/client/:clientId", hb.Booking.GetPendingByClient)
		protected.PATCH("/confirm/:id", hb.Booking.Confirm)
		protected.PATCH("/transfer/:id", hb.Booking.Transfer)
		protected.PATCH("/edit/:id", hb.Booking.Edit)
		protected.POST("/process", hb.Booking.Process)
		protected.POST("/process/:id", hb.Booking.ProcessByID)
		protected.POST("/process-past/:id", hb.Booking.ProcessPast)
		protected.POST("/confirm-notify", hb.Booking.ConfirmNotify)
		protected.POST("/cancel-past", hb.Booking.CancelPast)
	}
}

// RegisterBlockRoutes registers the read-only block calendar.
func RegisterBlockRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/block")
	{
		api.GET("/queue/:queueId", hb.Block.QueueBlocks)
		api.GET("/queue/:queueId/by-day", hb.Block.QueueBlocksByDay)
		api.GET("/commerce/:commerceId/by-day", hb.Block.CommerceBlocksByDay)
		api.GET("/commerce/:commerceId/queue/:queueId/specific", hb.Block.SpecificCalendarBlocks)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// corsConfig allows credentials only for an explicit origin list; a wildcard
// origin is served without them.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig(config.AllowedOrigins())))

	RegisterAttentionRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterBlockRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
