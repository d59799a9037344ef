package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/config"
	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
	accountdomain "github.com/BruksfildServices01/clinic-crm/internal/domain/account"
	"github.com/BruksfildServices01/clinic-crm/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/metrics"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	"github.com/BruksfildServices01/clinic-crm/internal/session"
	ucAccount "github.com/BruksfildServices01/clinic-crm/internal/usecase/account"
	ucLead "github.com/BruksfildServices01/clinic-crm/internal/usecase/lead"
	ucMessaging "github.com/BruksfildServices01/clinic-crm/internal/usecase/messaging"
	"github.com/BruksfildServices01/clinic-crm/internal/websocket"
)

// Deps are the singletons built in main and shared with background jobs.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger
	Audit  audit.Recorder

	Sessions     *session.Store
	Hub          *websocket.Hub
	Queue        *dispatch.Queue
	Progress     dispatch.ProgressStore
	LoginLimiter *middleware.RateLimiter

	Bulk      *ucMessaging.BulkDispatch
	Provision *ucAccount.ProvisionUser

	// nil when the integration is not configured
	PaymentLinks ucLead.LinkCreator
	Archive      ucLead.Archiver
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RecoveryMiddleware(d.Logger),
		middleware.RequestLogger(d.Logger),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	leadRepo := infraRepo.NewLeadGormRepository(d.DB)
	var accountRepo accountdomain.Repository = infraRepo.NewAccountGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES - LEADS
	// ======================================================
	createLeadUC := ucLead.NewCreateLead(leadRepo, d.Audit)
	updateLeadUC := ucLead.NewUpdateLead(leadRepo, d.Audit)
	deleteLeadUC := ucLead.NewDeleteLead(leadRepo, d.Audit)
	getLeadUC := ucLead.NewGetLead(leadRepo)
	listLeadsUC := ucLead.NewListLeads(leadRepo)
	changeStatusUC := ucLead.NewChangeStatus(leadRepo, d.Audit)
	attendanceUC := ucLead.NewResolveAttendance(leadRepo, d.Audit)
	upcomingUC := ucLead.NewListUpcoming(leadRepo, cfg.ClinicTimezone)

	dashboardUC := ucLead.NewGetDashboard(leadRepo, cfg.ClinicTimezone)
	exportUC := ucLead.NewExportLeads(leadRepo, d.Archive, d.Audit, d.Logger)

	// ======================================================
	// 🧠 USE CASES - PAGAMENTOS / REAGENDAMENTOS
	// ======================================================
	paymentSummaryUC := ucLead.NewGetPaymentSummary(leadRepo)
	registerPaymentUC := ucLead.NewRegisterPayment(leadRepo, d.Audit)
	paymentLinkUC := ucLead.NewCreatePaymentLink(leadRepo, d.PaymentLinks, d.Audit)

	rescheduleUC := ucLead.NewRescheduleLead(leadRepo, d.Audit)
	listReschedulesUC := ucLead.NewListReschedules(leadRepo)

	// ======================================================
	// 🧠 USE CASES - DISPAROS / CONTAS
	// ======================================================
	getDispatchUC := ucMessaging.NewGetDispatch(d.Queue, d.Progress)
	cancelDispatchUC := ucMessaging.NewCancelDispatch(d.Queue, d.Audit)

	tokens := ucAccount.NewTokenIssuer(cfg.JWTSecret, ucAccount.DefaultTokenTTL)
	loginUC := ucAccount.NewLogin(accountRepo, tokens, d.Sessions, d.Audit)
	logoutUC := ucAccount.NewLogout(d.Sessions)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(loginUC, logoutUC)
	accountHandler := handlers.NewAccountHandler(d.Provision, accountRepo)

	leadHandler := handlers.NewLeadHandler(
		createLeadUC,
		updateLeadUC,
		deleteLeadUC,
		getLeadUC,
		listLeadsUC,
		changeStatusUC,
		attendanceUC,
		upcomingUC,
	)
	paymentHandler := handlers.NewPaymentHandler(paymentSummaryUC, registerPaymentUC, paymentLinkUC)
	rescheduleHandler := handlers.NewRescheduleHandler(rescheduleUC, listReschedulesUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	exportHandler := handlers.NewExportHandler(exportUC)
	dispatchHandler := handlers.NewDispatchHandler(d.Bulk, getDispatchUC, cancelDispatchUC)
	wsHandler := handlers.NewWSHandler(d.Hub, cfg.CORSOrigins, d.Logger)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 📈 OBSERVABILIDADE
	// ======================================================
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		login := api.Group("/auth")
		if d.LoginLimiter != nil {
			login.Use(d.LoginLimiter.Middleware())
		}
		login.POST("/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret, d.Sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", accountHandler.Me)
			secured.GET("/ws", wsHandler.Connect)

			// ------------------------------
			// PACIENTES
			// ------------------------------
			secured.POST("/me/leads", leadHandler.Create)
			secured.GET("/me/leads", leadHandler.List)
			secured.GET("/me/leads/upcoming", leadHandler.Upcoming)
			secured.GET("/me/leads/export.csv", exportHandler.CSV)
			secured.GET("/me/leads/export.xlsx", exportHandler.XLSX)
			secured.GET("/me/leads/:id", leadHandler.Get)
			secured.PUT("/me/leads/:id", leadHandler.Update)
			secured.DELETE("/me/leads/:id", leadHandler.Delete)
			secured.PATCH("/me/leads/:id/status", leadHandler.ChangeStatus)
			secured.POST("/me/leads/:id/attendance", leadHandler.ResolveAttendance)

			// ------------------------------
			// PAGAMENTOS
			// ------------------------------
			secured.GET("/me/leads/:id/payment", paymentHandler.Summary)
			secured.POST("/me/leads/:id/payments", paymentHandler.Register)
			secured.POST("/me/leads/:id/payment-link", paymentHandler.Link)

			// ------------------------------
			// REAGENDAMENTOS
			// ------------------------------
			secured.POST("/me/leads/:id/reschedule", rescheduleHandler.Reschedule)
			secured.GET("/me/leads/:id/reschedules", rescheduleHandler.History)

			secured.GET("/me/dashboard", dashboardHandler.Get)

			// ------------------------------
			// DISPAROS WHATSAPP
			// ------------------------------
			secured.POST("/me/dispatches", dispatchHandler.Create)
			secured.GET("/me/dispatches/:id", dispatchHandler.Get)
			secured.DELETE("/me/dispatches/:id", dispatchHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// 🛡️ ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(string(accountdomain.RoleAdmin)))
			{
				admin.POST("/users", accountHandler.CreateUser)
			}
		}
	}
}
