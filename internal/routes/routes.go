package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	"github.com/BruksfildServices01/beauty-scheduler/internal/auth"
	"github.com/BruksfildServices01/beauty-scheduler/internal/config"
	"github.com/BruksfildServices01/beauty-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/beauty-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	"github.com/BruksfildServices01/beauty-scheduler/internal/realtime"
	ucAppointment "github.com/BruksfildServices01/beauty-scheduler/internal/usecase/appointment"
	ucChat "github.com/BruksfildServices01/beauty-scheduler/internal/usecase/chat"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Tokens *auth.Tokens
	Audit  *audit.Dispatcher
	Hub    *realtime.Hub
	Logger *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)
	chatRepo := infraRepo.NewChatGormRepository(d.DB)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES (APPOINTMENTS)
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	listSalonAppointmentsUC := ucAppointment.NewListSalonAppointments(appointmentRepo)
	createSalonClientUC := ucAppointment.NewCreateSalonClientAppointment(appointmentRepo, d.Audit)

	// ======================================================
	// 🧠 USE CASES (CHATS)
	// ======================================================
	listChatsUC := ucChat.NewListChats(chatRepo)
	openChatUC := ucChat.NewOpenChat(chatRepo)
	listMessagesUC := ucChat.NewListMessages(chatRepo)
	sendMessageUC := ucChat.NewSendMessage(chatRepo)
	markChatReadUC := ucChat.NewMarkChatRead(chatRepo)
	deleteChatUC := ucChat.NewDeleteChat(chatRepo, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, d.Tokens, d.Audit, d.Logger)
	usersHandler := handlers.NewUsersHandler(userRepo, d.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		getAppointmentUC,
		listAppointmentsUC,
		listSalonAppointmentsUC,
		createSalonClientUC,
	)

	notificationHandler := handlers.NewNotificationHandler(
		notificationRepo,
		userRepo,
		d.Hub,
		d.Audit,
		d.Logger,
	)

	chatHandler := handlers.NewChatHandler(
		listChatsUC,
		openChatUC,
		listMessagesUC,
		sendMessageUC,
		markChatReadUC,
		deleteChatUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogRepo)
	wsHandler := handlers.NewWSHandler(d.Hub, d.Tokens, d.Config.CORSOrigins, d.Logger)

	// ======================================================
	// 🔌 SERVICE
	// ======================================================
	r.GET("/health", handlers.Health)
	r.GET("/ws", wsHandler.Serve)
	r.NoRoute(handlers.NotFound)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.GET("", handlers.APIInfo)

	// ------------------------------
	// 🔐 AUTH
	// ------------------------------
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Tokens))
	{
		secured.GET("/auth/me", authHandler.Me)

		// ------------------------------
		// USERS
		// ------------------------------
		secured.PUT("/users/me", usersHandler.UpdateMe)
		secured.DELETE("/users/me", usersHandler.DeleteMe)
		secured.GET("/users/search/salons", usersHandler.SearchSalons)
		secured.POST("/users/subscribe/:salonId", usersHandler.Subscribe)
		secured.DELETE("/users/subscribe", usersHandler.Unsubscribe)
		secured.GET("/users/salon/subscribers", usersHandler.Subscribers)
		secured.GET("/users/:id", usersHandler.Get)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.GET("/appointments", appointmentHandler.List)
		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments/salon/all", appointmentHandler.SalonAll)
		secured.POST("/appointments/salon/client", appointmentHandler.SalonClient)
		secured.GET("/appointments/:id", appointmentHandler.Get)
		secured.PUT("/appointments/:id", appointmentHandler.Update)
		secured.DELETE("/appointments/:id", appointmentHandler.Delete)

		// ------------------------------
		// NOTIFICATIONS
		// ------------------------------
		secured.GET("/notifications", notificationHandler.List)
		secured.GET("/notifications/unread/count", notificationHandler.UnreadCount)
		secured.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		secured.POST("/notifications/broadcast", notificationHandler.Broadcast)
		secured.POST("/notifications/:id/read", notificationHandler.MarkRead)
		secured.DELETE("/notifications/:id", notificationHandler.Delete)

		// ------------------------------
		// CHATS
		// ------------------------------
		secured.GET("/chats", chatHandler.List)
		secured.POST("/chats/with/:userId", chatHandler.Open)
		secured.GET("/chats/:chatId/messages", chatHandler.Messages)
		secured.POST("/chats/:chatId/messages", chatHandler.Send)
		secured.POST("/chats/:chatId/read", chatHandler.MarkRead)
		secured.DELETE("/chats/:chatId", chatHandler.Delete)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
