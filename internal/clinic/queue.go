package clinic

import (
	"context"
	"errors"
	"time"
)

// QueueService owns the waiting queue and is the synchronization hub: queue
// status transitions mutate doctor availability and appointment completion
// as side effects. Each side-effect write commits independently; there is no
// transaction spanning the sequence.
type QueueService struct {
	store        Store
	doctors      *DoctorService
	appointments *AppointmentService
	now          func() time.Time
}

func NewQueueService(store Store, doctors *DoctorService, appointments *AppointmentService) *QueueService {
	return &QueueService{
		store:        store,
		doctors:      doctors,
		appointments: appointments,
		now:          time.Now,
	}
}

// WithClock overrides the clock used by the availability resync. Tests use
// it to pin "today" and "now".
func (s *QueueService) WithClock(now func() time.Time) *QueueService {
	s.now = now
	return s
}

func (s *QueueService) Create(ctx context.Context, e QueueEntry) (*QueueEntry, error) {
	if e.Status == "" {
		e.Status = QueueWaiting
	}
	if e.Priority == "" {
		e.Priority = PriorityNormal
	}
	return s.store.CreateQueueEntry(ctx, e)
}

func (s *QueueService) FindAll(ctx context.Context) ([]QueueEntry, error) {
	return s.store.ListQueueEntries(ctx)
}

func (s *QueueService) FindOne(ctx context.Context, id int64) (*QueueEntry, error) {
	return s.store.GetQueueEntryByID(ctx, id)
}

// Update applies a partial update and fires the cross-entity side effects.
//
// The doctor id consulted differs per transition on purpose: moving to
// "With Doctor" reads the incoming update's doctorId (the doctor may be
// assigned in the same call), while completing reads the entry's stored
// doctorId (the doctor who was treating the patient, which the update need
// not repeat).
func (s *QueueService) Update(ctx context.Context, id int64, upd QueueUpdate) (*QueueEntry, error) {
	stored, err := s.store.GetQueueEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil && *upd.Status == QueueWithDoctor && upd.DoctorID != nil {
		busy := DoctorBusy
		if _, err := s.doctors.Update(ctx, *upd.DoctorID, DoctorUpdate{Status: &busy}); err != nil {
			return nil, err
		}
	}

	if upd.Status != nil && *upd.Status == QueueCompleted && stored.DoctorID != nil {
		if stored.AppointmentID != nil {
			if err := s.appointments.MarkCompleted(ctx, *stored.AppointmentID); err != nil {
				return nil, err
			}
		}
		if err := s.resyncDoctorAvailability(ctx, *stored.DoctorID); err != nil {
			return nil, err
		}
	}

	return s.store.UpdateQueueEntry(ctx, id, upd)
}

// Remove frees the treating doctor like a completion would, but never
// touches the linked appointment. Deleting a missing entry succeeds.
func (s *QueueService) Remove(ctx context.Context, id int64) error {
	stored, err := s.store.GetQueueEntryByID(ctx, id)
	if err != nil && !errors.Is(err, ErrQueueEntryNotFound) {
		return err
	}
	if stored != nil && stored.DoctorID != nil {
		if err := s.resyncDoctorAvailability(ctx, *stored.DoctorID); err != nil {
			return err
		}
	}
	return s.store.DeleteQueueEntry(ctx, id)
}

// resyncDoctorAvailability recomputes a doctor's availability from the
// appointment ledger: Available with the time of the next Booked appointment
// later today, or Available/"Now" when there is none. It always sets
// Available, even for a doctor who is Off Duty or still has other queue
// patients.
func (s *QueueService) resyncDoctorAvailability(ctx context.Context, doctorID int64) error {
	now := s.now()
	today := now.Format("2006-01-02")
	currentTime := now.Format("15:04")

	available := DoctorAvailable
	nextAvailable := "Now"

	next, err := s.appointments.NextBooked(ctx, doctorID, today, currentTime)
	switch {
	case err == nil:
		nextAvailable = next.Time
	case errors.Is(err, ErrAppointmentNotFound):
		// no remaining commitment today
	default:
		return err
	}

	_, err = s.doctors.Update(ctx, doctorID, DoctorUpdate{
		Status:        &available,
		NextAvailable: &nextAvailable,
	})
	return err
}
