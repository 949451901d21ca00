package router

import (
	"time"

	"github.com/baco-dev/baco/internal/handlers"
	"github.com/baco-dev/baco/internal/middleware"
	"github.com/baco-dev/baco/internal/services"
	"github.com/baco-dev/baco/internal/store"
	"github.com/baco-dev/baco/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(s store.Store, mailer services.Mailer) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	notifier := services.NewNotificationService(s)
	participations := services.NewParticipationService(s, notifier)
	chat := services.NewChatService(s)
	invites := services.NewInviteService(s, notifier, mailer)

	hub := handlers.NewChatHub()

	authHandler := handlers.NewAuthHandler(s)
	adminHandler := handlers.NewAdminHandler(s)
	categoryHandler := handlers.NewCategoryHandler(s)
	eventHandler := handlers.NewEventHandler(s)
	participantHandler := handlers.NewParticipantHandler(participations)
	notificationHandler := handlers.NewNotificationHandler(notifier)
	chatHandler := handlers.NewChatHandler(chat, hub)
	inviteHandler := handlers.NewInviteHandler(invites)
	chatSocket := handlers.NewChatSocketHandler(chat, hub)

	authRequired := middleware.AuthMiddleware(s)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/events/:id/chat", authRequired, chatSocket.Subscribe)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		users := api.Group("/users", authRequired)
		{
			users.PATCH("/me", authHandler.UpdateProfile)
			users.PATCH("/me/document", authHandler.SubmitDocument)
		}

		admin := api.Group("/admin", authRequired, middleware.AdminOnly())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/document", adminHandler.ReviewDocument)
		}

		api.GET("/categories", categoryHandler.List)
		api.GET("/categories/:id/subcategories", categoryHandler.Subcategories)

		events := api.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)

			events.POST("", authRequired, eventHandler.Create)
			events.PATCH("/:id", authRequired, eventHandler.Update)
			events.DELETE("/:id", authRequired, eventHandler.Delete)
			events.GET("/:id/participants", authRequired, eventHandler.Participants)

			events.POST("/:id/participate", authRequired, participantHandler.Join)
			events.GET("/:id/participation", authRequired, participantHandler.Mine)

			events.GET("/:id/chat", authRequired, chatHandler.List)
			events.POST("/:id/chat", authRequired, chatHandler.Post)

			events.POST("/:id/co-organizers/invites", authRequired, inviteHandler.Create)
			events.GET("/:id/co-organizers", authRequired, inviteHandler.CoOrganizers)
		}

		participants := api.Group("/participants", authRequired)
		{
			participants.DELETE("/:id", participantHandler.Remove)
			participants.PATCH("/:id/approve", participantHandler.Approve)
			participants.PATCH("/:id/reject", participantHandler.Reject)
			participants.PATCH("/:id/revert", participantHandler.Revert)
		}

		notifications := api.Group("/notifications", authRequired)
		{
			notifications.GET("", notificationHandler.List)
			// ":id" also accepts the literal "all" for mark-all-read
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		invitesGroup := api.Group("/invites")
		{
			invitesGroup.GET("/:token", inviteHandler.Get)
			invitesGroup.POST("/:token/accept", authRequired, inviteHandler.Accept)
			invitesGroup.POST("/:token/reject", authRequired, inviteHandler.Reject)
		}
	}

	return r
}
