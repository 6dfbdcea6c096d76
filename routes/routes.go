package routes

import (
	"net/http"
	"time"

	"hrbridge/handlers"
	"hrbridge/middleware"
	"hrbridge/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/me", hb.Auth.Me)
	}
}

// RegisterAdminRoutes sets up the HR-side slot management endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.RequireAdmin())
		adminGroup.POST("/meeting-slots", hb.AdminSlots.CreateSlot)
		adminGroup.GET("/meeting-slots", hb.AdminSlots.ListSlots)
		adminGroup.GET("/meeting-slots/:id", hb.AdminSlots.GetSlot)
		adminGroup.PATCH("/meeting-slots/:id", hb.AdminSlots.UpdateSlot)
		adminGroup.DELETE("/meeting-slots/:id", hb.AdminSlots.DeleteSlot)
	}
}

// RegisterEmployeeRoutes sets up the employee booking and self-assessment
// endpoints. Book and unbook are PATCH-only; a PUT on either returns 405 so a
// full-document replace can never clobber a concurrent booking.
func RegisterEmployeeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	empGroup := r.Group("/api/employee")
	{
		empGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		empGroup.Use(middleware.RequireEmployee())

		empGroup.GET("/meeting-slots", hb.EmployeeSlots.ListAvailable)
		empGroup.PATCH("/meeting-slots/:id/book", hb.EmployeeSlots.Book)
		empGroup.PUT("/meeting-slots/:id/book", methodNotAllowed)
		empGroup.PATCH("/meeting-slots/:id/unbook", hb.EmployeeSlots.Unbook)
		empGroup.PUT("/meeting-slots/:id/unbook", methodNotAllowed)
		empGroup.GET("/my-booked-slots", hb.EmployeeSlots.MyBookings)

		empGroup.POST("/self-assessments", hb.Assessments.Submit)
		empGroup.GET("/self-assessments", hb.Assessments.ListMine)
	}
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method not allowed. Use PATCH."})
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterEmployeeRoutes(r, hb)
	RegisterHealthRoute(r)
}
