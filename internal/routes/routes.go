package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/audit"
	"github.com/alphaclinic/clinic-manager/internal/cache"
	"github.com/alphaclinic/clinic-manager/internal/config"
	"github.com/alphaclinic/clinic-manager/internal/handlers"
	infraRepo "github.com/alphaclinic/clinic-manager/internal/infra/repository"
	"github.com/alphaclinic/clinic-manager/internal/middleware"
	"github.com/alphaclinic/clinic-manager/internal/models"
	"github.com/alphaclinic/clinic-manager/internal/notify"
	"github.com/alphaclinic/clinic-manager/internal/storage"
	ucAppointment "github.com/alphaclinic/clinic-manager/internal/usecase/appointment"
	ucDayoff "github.com/alphaclinic/clinic-manager/internal/usecase/dayoff"
	ucVisit "github.com/alphaclinic/clinic-manager/internal/usecase/visit"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *logrus.Logger) *notify.ReminderScheduler {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	dayOffRepo := infraRepo.NewDayOffGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	visitRepo := infraRepo.NewVisitGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	feedCache := cache.NewIncompleteFeedCache(cfg.RedisAddr)
	avatarStore := storage.NewAvatarStore(cfg)

	senders := map[string]notify.Sender{
		models.ChannelSMS:   notify.NewTwilioSender(cfg),
		models.ChannelEmail: notify.NewSMTPSender(cfg),
	}
	notifyDispatcher := notify.NewDispatcher(db, senders, log)
	notifyService := notify.NewService(db, notifyDispatcher, cfg.NotificationsEnabled, log)
	reminderScheduler := notify.NewReminderScheduler(
		appointmentRepo,
		notifyService,
		cfg.ReminderCronSpec,
		cfg.Timezone,
		log,
	)

	// ======================================================
	// USE CASES - DAY OFFS
	// ======================================================
	createDayOffUC := ucDayoff.NewCreateDayOff(dayOffRepo, auditDispatcher)
	updateDayOffUC := ucDayoff.NewUpdateDayOff(dayOffRepo)
	decideDayOffUC := ucDayoff.NewDecideDayOff(dayOffRepo, auditDispatcher)
	leaveBalanceUC := ucDayoff.NewQueryLeaveBalance(dayOffRepo)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	bookAppointmentUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		notifyService,
		auditDispatcher,
		cfg.Timezone,
	)
	changeStatusUC := ucAppointment.NewChangeStatus(appointmentRepo, feedCache, auditDispatcher)

	// ======================================================
	// USE CASES - VISITS
	// ======================================================
	createVisitUC := ucVisit.NewCreateVisit(visitRepo)
	updateVisitUC := ucVisit.NewUpdateVisit(visitRepo)
	incompleteFeedUC := ucVisit.NewIncompleteFeed(visitRepo, feedCache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	staffHandler := handlers.NewStaffHandler(db, avatarStore)
	clientHandler := handlers.NewClientHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)
	resourceHandler := handlers.NewResourceHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db, notifyService)

	dayOffHandler := handlers.NewDayOffHandler(
		createDayOffUC,
		updateDayOffUC,
		decideDayOffUC,
		leaveBalanceUC,
		dayOffRepo,
		cfg.Timezone,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookAppointmentUC,
		changeStatusUC,
		appointmentRepo,
		cfg.Timezone,
	)

	visitHandler := handlers.NewVisitHandler(
		createVisitUC,
		updateVisitUC,
		incompleteFeedUC,
		visitRepo,
		feedCache,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// Staff
			secured.GET("/staff", staffHandler.List)
			secured.GET("/staff/:id", staffHandler.Get)
			secured.GET("/staff/:id/leave-balance", dayOffHandler.LeaveBalance)
			secured.POST("/staff/:id/avatar", staffHandler.UploadAvatar)

			// Day offs
			secured.POST("/dayoffs", dayOffHandler.Create)
			secured.GET("/dayoffs", dayOffHandler.List)
			secured.PUT("/dayoffs/:id", dayOffHandler.Update)
			secured.DELETE("/dayoffs/:id", dayOffHandler.Delete)

			// Clients
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.GET("/clients/:id/packages", clientHandler.ListPackages)

			// Catalog
			secured.GET("/categories", catalogHandler.ListCategories)
			secured.GET("/services", catalogHandler.ListServices)
			secured.GET("/packages", catalogHandler.ListPackages)
			secured.POST("/packages/purchase", catalogHandler.PurchasePackage)

			// Resources
			secured.GET("/rooms", resourceHandler.ListRooms)
			secured.GET("/machines", resourceHandler.ListMachines)

			// Appointments
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)

			// Visits
			secured.GET("/visits", visitHandler.List)
			secured.GET("/visits/:id", visitHandler.Get)
			secured.POST("/visits", visitHandler.Create)
			secured.PUT("/visits/:id", visitHandler.Update)
			secured.GET("/visits/incomplete", visitHandler.IncompleteFeed)
			secured.GET("/visits/incomplete/count", visitHandler.IncompleteCount)

			// Notifications
			secured.GET("/notifications/logs", notificationHandler.ListLogs)
			secured.GET("/notifications/templates", notificationHandler.ListTemplates)

			// ------------------------------
			// ADMIN ONLY
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.PUT("/staff/:id/profile", staffHandler.UpdateProfile)

				admin.POST("/dayoffs/:id/approve", dayOffHandler.Approve)
				admin.POST("/dayoffs/:id/reject", dayOffHandler.Reject)

				admin.POST("/categories", catalogHandler.CreateCategory)
				admin.POST("/services", catalogHandler.CreateService)
				admin.PUT("/services/:id", catalogHandler.UpdateService)
				admin.POST("/packages", catalogHandler.CreatePackage)

				admin.POST("/rooms", resourceHandler.CreateRoom)
				admin.PUT("/rooms/:id", resourceHandler.UpdateRoom)
				admin.POST("/machines", resourceHandler.CreateMachine)
				admin.PUT("/machines/:id", resourceHandler.UpdateMachine)

				admin.DELETE("/visits/:id", visitHandler.Delete)

				admin.GET("/analytics/dashboard", analyticsHandler.Dashboard)
				admin.GET("/audit-logs", auditLogsHandler.List)

				admin.POST("/notifications/templates", notificationHandler.CreateTemplate)
				admin.POST("/notifications/send", notificationHandler.Send)
			}
		}
	}

	return reminderScheduler
}
