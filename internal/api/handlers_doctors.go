package api

import (
	"errors"
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
)

func createDoctorHandler(svc *clinic.DoctorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDoctorRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		doctor, err := svc.Create(r.Context(), req.ToDoctor())
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, doctor)
	}
}

func listDoctorsHandler(svc *clinic.DoctorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := clinic.DoctorFilter{
			Specialization: q.Get("specialization"),
			Location:       q.Get("location"),
			Status:         clinic.DoctorStatus(q.Get("status")),
		}
		if filter.Status != "" && !validDoctorStatus(string(filter.Status)) {
			writeError(w, http.StatusBadRequest, "validation_error", "status must be one of Available, Busy, Off Duty")
			return
		}

		doctors, err := svc.FindAll(r.Context(), filter)
		if err != nil {
			handleDoctorError(w, err)
			return
		}
		if doctors == nil {
			doctors = []clinic.Doctor{}
		}

		writeJSON(w, http.StatusOK, doctors)
	}
}

func getDoctorHandler(svc *clinic.DoctorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		doctor, err := svc.FindOne(r.Context(), id)
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, doctor)
	}
}

func updateDoctorHandler(svc *clinic.DoctorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		var req UpdateDoctorRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		doctor, err := svc.Update(r.Context(), id, req.ToUpdate())
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, doctor)
	}
}

func deleteDoctorHandler(svc *clinic.DoctorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		deleted, err := svc.Remove(r.Context(), id)
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
	}
}

func handleDoctorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
