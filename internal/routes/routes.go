package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// RegisterRoutes mounts the JSON API under /api. deps carries the
// appointment repository, the optional slot cache and the audit sink.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps ucAppointment.Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.CORSMiddleware(),
		middleware.RequestLogger(deps.Log),
		gin.Recovery(),
	)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(deps)
	createAppointmentUC := ucAppointment.NewCreateAppointment(deps)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(deps)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(deps)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(deps)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(deps)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(deps)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(deps.Repo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(deps.Repo)
	listMyAppointmentsUC := ucAppointment.NewListMyAppointments(deps.Repo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, validators.NewEmailDomainChecker())
	meHandler := handlers.NewMeHandler(db)

	barbershopHandler := handlers.NewBarbershopHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, deps.Cache, deps.Log)

	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		listMyAppointmentsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 CATÁLOGO PÚBLICO
		// ------------------------------
		api.GET("/barbershops", barbershopHandler.List)
		api.GET("/barbers", barberHandler.List)
		api.GET("/services", serviceHandler.List)
		api.GET("/barbers/:id/working-hours", workingHoursHandler.Get)
		api.GET("/barbers/:id/available-slots", availabilityHandler.AvailableSlots)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/appointments", appointmentHandler.ListMine)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		}

		// ------------------------------
		// 🛠️ ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.POST("/barbershops", barbershopHandler.Create)
			admin.POST("/barbers", barberHandler.Create)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.PUT("/barbers/:id/working-hours", workingHoursHandler.Update)

			admin.GET("/barbers/:id/appointments", appointmentHandler.ListByDate)
			admin.GET("/barbers/:id/appointments/month", appointmentHandler.ListByMonth)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
