package api

import (
	"errors"
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
)

func createQueueEntryHandler(svc *clinic.QueueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateQueueRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		entry, err := svc.Create(r.Context(), req.ToQueueEntry())
		if err != nil {
			handleQueueError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, entry)
	}
}

func listQueueEntriesHandler(svc *clinic.QueueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.FindAll(r.Context())
		if err != nil {
			handleQueueError(w, err)
			return
		}
		if entries == nil {
			entries = []clinic.QueueEntry{}
		}

		writeJSON(w, http.StatusOK, entries)
	}
}

func getQueueEntryHandler(svc *clinic.QueueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		entry, err := svc.FindOne(r.Context(), id)
		if err != nil {
			handleQueueError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, entry)
	}
}

func updateQueueEntryHandler(svc *clinic.QueueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		var req UpdateQueueRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		entry, err := svc.Update(r.Context(), id, req.ToUpdate())
		if err != nil {
			handleQueueError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, entry)
	}
}

func deleteQueueEntryHandler(svc *clinic.QueueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			handleQueueError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Patient removed successfully"})
	}
}

func handleQueueError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrQueueEntryNotFound):
		writeError(w, http.StatusNotFound, "queue_entry_not_found", err.Error())
	case errors.Is(err, clinic.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
