package api

import (
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/auth"
	"github.com/clinicdesk/clinic-backend/internal/clinic"
)

const (
	demoUserEmail    = "admin@clinic.local"
	demoUserPassword = "admin123"
)

func seedHandler(seeder *clinic.Seeder, authSvc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := seeder.Run(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if err := authSvc.EnsureUser(r.Context(), demoUserEmail, demoUserPassword); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Database seeded successfully!"})
	}
}
