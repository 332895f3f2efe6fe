package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gatherly/server/internal/container"
	"github.com/gatherly/server/internal/handlers"
	"github.com/gatherly/server/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"service": "gatherly-api",
		})
	})

	// public routes
	r.POST("/signup", handlers.Signup(container.UserService))
	r.POST("/login", handlers.Login(container.UserService))

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Config.JWTSecret, container.UserService, container.Logger))

	protected.POST("/toggle-login", handlers.ToggleLoginAccess(container.UserService))
	protected.GET("/my-profile", handlers.MyProfile())

	eventRoutes := protected.Group("/event")
	{
		eventRoutes.POST("/", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/all", handlers.ListEvents(container.DiscoveryService))
		eventRoutes.GET("/search/labels", handlers.SearchByLabels(container.DiscoveryService))
		eventRoutes.GET("/search/organizer/:email", handlers.SearchByOrganizer(container.DiscoveryService))
		eventRoutes.GET("/nearby", handlers.NearbyEvents(container.DiscoveryService))
		eventRoutes.GET("/user-events", handlers.UserEvents(container.MembershipService))
		eventRoutes.PUT("/title/:title", handlers.UpdateEventByTitle(container.EventService))
		eventRoutes.DELETE("/title/:title", handlers.DeleteEventByTitle(container.EventService))

		eventRoutes.POST("/:eventId/rsvp", handlers.RSVPToEvent(container.MembershipService))
		eventRoutes.DELETE("/:eventId/rsvp/:email", handlers.RemoveRSVP(container.MembershipService))
		eventRoutes.DELETE("/:eventId/remove-attendee/:email", handlers.RemoveAttendee(container.MembershipService))
	}

	return r
}
