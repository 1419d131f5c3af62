package api

import (
	"errors"
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
)

func createAppointmentHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		appt, err := svc.Create(r.Context(), req.ToAppointment())
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, appt)
	}
}

func listAppointmentsHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.FindAll(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			handleAppointmentError(w, err)
			return
		}
		if appts == nil {
			appts = []clinic.Appointment{}
		}

		writeJSON(w, http.StatusOK, appts)
	}
}

func listAppointmentsByDoctorHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := idParam(r, "doctorId")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "doctorId must be a positive integer")
			return
		}

		appts, err := svc.FindAllByDoctor(r.Context(), doctorID)
		if err != nil {
			handleAppointmentError(w, err)
			return
		}
		if appts == nil {
			appts = []clinic.Appointment{}
		}

		writeJSON(w, http.StatusOK, appts)
	}
}

func getAppointmentHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		appt, err := svc.FindOne(r.Context(), id)
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, appt)
	}
}

func updateAppointmentHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		var req UpdateAppointmentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		appt, err := svc.Update(r.Context(), id, req.ToUpdate())
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, appt)
	}
}

func deleteAppointmentHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		deleted, err := svc.Remove(r.Context(), id)
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
	}
}

func handleAppointmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, clinic.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
