package routes

import (
	adminapi "timeline-app/internal/api/admin"
	authapi "timeline-app/internal/api/auth"
	"timeline-app/internal/api/categories"
	"timeline-app/internal/api/comments"
	eventsapi "timeline-app/internal/api/events"
	seriesapi "timeline-app/internal/api/series"
	"timeline-app/internal/api/users"
	"timeline-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Public reads; a bearer token, when present, unlocks owned private
	// series and per-user like/favorite state.
	reads := r.Group("/")
	reads.Use(middleware.OptionalAuth())
	reads.GET("/categories", categories.ListCategories)
	reads.GET("/series", seriesapi.ListSeries)
	reads.GET("/series/:id", seriesapi.GetSeriesByID)
	reads.GET("/event_series/:seriesId/event", eventsapi.ListSeriesEvents)
	reads.GET("/users/:id", users.GetUserProfile)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.PUT("/users/:id", users.UpdateUser)
	auth.POST("/users/:id/subscribe", users.Subscribe)
	auth.DELETE("/users/:id/subscribe", users.Unsubscribe)

	auth.GET("/workshop/series", seriesapi.ListWorkshopSeries)
	auth.POST("/series", seriesapi.CreateSeries)
	auth.PUT("/series/:id", seriesapi.UpdateSeries)
	auth.DELETE("/series/:id", seriesapi.DeleteSeries)

	auth.POST("/series/:id/like", seriesapi.LikeSeries)
	auth.DELETE("/series/:id/like", seriesapi.UnlikeSeries)
	auth.POST("/series/:id/favorite", seriesapi.FavoriteSeries)
	auth.DELETE("/series/:id/favorite", seriesapi.UnfavoriteSeries)

	auth.POST("/event_series/:seriesId/event", eventsapi.CreateSeriesEvent)
	auth.DELETE("/events/:id", eventsapi.DeleteEvent)

	auth.PUT("/source_content/:id/comment", comments.UpsertComment)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.POST("/categories", adminapi.CreateCategory)
	admin.POST("/subcategories", adminapi.CreateSubCategory)
	admin.POST("/platforms", adminapi.CreatePlatform)
}
