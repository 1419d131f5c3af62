package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinic-backend/internal/auth"
	"github.com/clinicdesk/clinic-backend/internal/clinic"
)

type RouterConfig struct {
	Doctors      *clinic.DoctorService
	Appointments *clinic.AppointmentService
	Queue        *clinic.QueueService
	Seeder       *clinic.Seeder
	Auth         *auth.Service
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health", health.Check)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Auth endpoints
	r.Post("/auth/register", registerHandler(cfg.Auth))
	r.Post("/auth/login", loginHandler(cfg.Auth))

	// Everything else requires a valid token
	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.Auth))

		pr.Post("/doctors", createDoctorHandler(cfg.Doctors))
		pr.Get("/doctors", listDoctorsHandler(cfg.Doctors))
		pr.Get("/doctors/{id}", getDoctorHandler(cfg.Doctors))
		pr.Patch("/doctors/{id}", updateDoctorHandler(cfg.Doctors))
		pr.Delete("/doctors/{id}", deleteDoctorHandler(cfg.Doctors))

		pr.Post("/appointments", createAppointmentHandler(cfg.Appointments))
		pr.Get("/appointments", listAppointmentsHandler(cfg.Appointments))
		pr.Get("/appointments/doctor/{doctorId}", listAppointmentsByDoctorHandler(cfg.Appointments))
		pr.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
		pr.Patch("/appointments/{id}", updateAppointmentHandler(cfg.Appointments))
		pr.Delete("/appointments/{id}", deleteAppointmentHandler(cfg.Appointments))

		pr.Post("/queue", createQueueEntryHandler(cfg.Queue))
		pr.Get("/queue", listQueueEntriesHandler(cfg.Queue))
		pr.Get("/queue/{id}", getQueueEntryHandler(cfg.Queue))
		pr.Patch("/queue/{id}", updateQueueEntryHandler(cfg.Queue))
		pr.Delete("/queue/{id}", deleteQueueEntryHandler(cfg.Queue))

		pr.Post("/seed", seedHandler(cfg.Seeder, cfg.Auth))
	})

	return r
}
