package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/volunteerhub/internal/app/controllers"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/middleware"
	"github.com/yigit/volunteerhub/internal/pkg/websocket"
)

// Controllers groups every HTTP handler mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Event        *controllers.EventController
	Campaign     *controllers.CampaignController
	Post         *controllers.PostController
	Feed         *controllers.FeedController
	Notification *controllers.NotificationController
	Chat         *controllers.ChatController
	Petition     *controllers.PetitionController
	Report       *controllers.ReportController
	Dashboard    *controllers.DashboardController
	WebSocket    *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// Public routes; a valid token still identifies the caller
	public := v1.Group("")
	public.Use(authMiddleware.OptionalAuth())

	// Authenticated routes
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	associationOnly := authMiddleware.RoleRequired(models.RoleAssociation)
	volunteerOnly := authMiddleware.RoleRequired(models.RoleVolunteer)

	// --- Auth ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/volunteer", h.Auth.RegisterVolunteer)
		auth.POST("/register/association", h.Auth.RegisterAssociation)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/reset-password", h.Auth.RequestPasswordReset)
		auth.POST("/reset-password/confirm", h.Auth.ConfirmPasswordReset)
	}

	// --- Users and profiles ---
	me := authenticated.Group("/users/me")
	{
		me.GET("", h.User.GetMyProfile)
		me.PUT("", h.User.UpdateMyProfile)
		me.POST("/photo", h.User.UpdateProfilePhoto)
		me.DELETE("/photo", h.User.DeleteProfilePhoto)
	}
	public.GET("/volunteers/:id", h.User.GetVolunteerProfile)
	public.GET("/volunteers/:id/followed-associations", h.User.GetVolunteerFollowed)

	public.GET("/associations", h.User.ListAssociations)
	public.GET("/associations/:id", h.User.GetAssociationProfile)
	associations := authenticated.Group("/associations")
	{
		associations.GET("/followed", h.User.ListMyFollowed)
		// Non-volunteers get an informational outcome, not a 403
		associations.POST("/:id/follow", h.User.Follow)
		associations.POST("/:id/unfollow", h.User.Unfollow)
	}

	// --- Events and participations ---
	public.GET("/events/map", h.Feed.GetEventsMap)
	public.GET("/events/:id", h.Event.GetEvent)
	events := authenticated.Group("/events")
	{
		events.GET("/my", associationOnly, h.Event.ListMyEvents)
		events.POST("", associationOnly, h.Event.CreateEvent)
		events.PUT("/:id", associationOnly, h.Event.UpdateEvent)
		events.DELETE("/:id", associationOnly, h.Event.DeleteEvent)
		events.POST("/:id/image", associationOnly, h.Event.UploadImage)

		events.POST("/:id/apply", h.Event.Apply)
		events.DELETE("/:id/participation", volunteerOnly, h.Event.Withdraw)
		events.GET("/:id/participants", associationOnly, h.Event.ListParticipants)
		events.POST("/:id/participants/:pid/:action", associationOnly, h.Event.Decide)
	}

	// --- Campaigns and donations ---
	public.GET("/campaigns/:id", h.Campaign.GetCampaign)
	public.POST("/campaigns/:id/donations/checkout", h.Campaign.Checkout)
	public.GET("/donations/confirm", h.Campaign.ConfirmDonation)
	v1.POST("/payments/notifications", h.Campaign.PaymentNotification)
	v1.GET("/receipts/:filename", h.Campaign.DownloadReceipt)
	campaigns := authenticated.Group("/campaigns")
	campaigns.Use(associationOnly)
	{
		campaigns.GET("/my", h.Campaign.ListMyCampaigns)
		campaigns.POST("", h.Campaign.CreateCampaign)
		campaigns.PUT("/:id", h.Campaign.UpdateCampaign)
		campaigns.DELETE("/:id", h.Campaign.DeleteCampaign)
		campaigns.POST("/:id/image", h.Campaign.UploadImage)
	}

	// --- Posts ---
	public.GET("/posts/:id", h.Post.GetPost)
	posts := authenticated.Group("/posts")
	{
		posts.POST("", associationOnly, h.Post.CreatePost)
		posts.PUT("/:id", associationOnly, h.Post.UpdatePost)
		posts.DELETE("/:id", associationOnly, h.Post.DeletePost)
		posts.POST("/:id/image", associationOnly, h.Post.UploadImage)
		posts.POST("/:id/applause", h.Post.ToggleApplause)
	}

	// --- Feed and map ---
	public.GET("/feed", h.Feed.GetFeed)
	public.GET("/map", h.Feed.GetMap)

	// --- Notifications ---
	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", h.Notification.ListNotifications)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
		notifications.POST("/:id/read", h.Notification.MarkRead)
	}

	// --- Chats ---
	chats := authenticated.Group("/chats")
	{
		chats.POST("/start/:user_id", h.Chat.StartChat)
		chats.GET("/conversations", h.Chat.ListConversations)
		chats.GET("/:id/messages", h.Chat.GetMessages)
		chats.POST("/:id/messages", h.Chat.SendMessage)
		chats.GET("/:id/ws", h.WebSocket.HandleConnection)
	}

	// --- Petitions and reports ---
	public.GET("/petitions", h.Petition.ListPetitions)
	public.GET("/petitions/:id", h.Petition.GetPetition)
	petitions := authenticated.Group("/petitions")
	{
		petitions.POST("", h.Petition.CreatePetition)
		petitions.PUT("/:id", h.Petition.UpdatePetition)
		petitions.POST("/:id/image", h.Petition.UploadImage)
		petitions.POST("/:id/sign", h.Petition.Sign)
		petitions.POST("/:id/support", h.Petition.Support)
	}

	public.GET("/reports", h.Report.ListReports)
	public.GET("/reports/:id", h.Report.GetReport)
	reports := authenticated.Group("/reports")
	{
		reports.POST("", h.Report.CreateReport)
		reports.DELETE("/:id", h.Report.DeleteReport)
		reports.POST("/:id/image", h.Report.UploadImage)
	}

	// --- Dashboards ---
	dashboard := authenticated.Group("/dashboard")
	{
		dashboard.GET("/volunteer", volunteerOnly, h.Dashboard.VolunteerDashboard)
		dashboard.GET("/association", associationOnly, h.Dashboard.AssociationDashboard)
	}
}
