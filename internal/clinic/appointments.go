package clinic

import (
	"context"
	"fmt"
)

// AppointmentService owns scheduled appointments. It snapshots the doctor's
// name into the record at creation time so listings survive later renames.
type AppointmentService struct {
	store   Store
	doctors *DoctorService
}

func NewAppointmentService(store Store, doctors *DoctorService) *AppointmentService {
	return &AppointmentService{
		store:   store,
		doctors: doctors,
	}
}

func (s *AppointmentService) Create(ctx context.Context, a Appointment) (*Appointment, error) {
	doctor, err := s.doctors.FindOne(ctx, a.DoctorID)
	if err != nil {
		return nil, err
	}

	a.DoctorName = doctor.Name
	if a.Status == "" {
		a.Status = AppointmentBooked
	}
	return s.store.CreateAppointment(ctx, a)
}

func (s *AppointmentService) FindAll(ctx context.Context, search string) ([]Appointment, error) {
	return s.store.ListAppointments(ctx, search)
}

// FindAllByDoctor returns the doctor's Booked appointments, soonest first.
// The queue service uses it indirectly to determine a doctor's next
// commitment.
func (s *AppointmentService) FindAllByDoctor(ctx context.Context, doctorID int64) ([]Appointment, error) {
	return s.store.ListBookedAppointmentsByDoctor(ctx, doctorID)
}

func (s *AppointmentService) FindOne(ctx context.Context, id int64) (*Appointment, error) {
	return s.store.GetAppointmentByID(ctx, id)
}

func (s *AppointmentService) Update(ctx context.Context, id int64, upd AppointmentUpdate) (*Appointment, error) {
	stored, err := s.store.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Repointing at a different doctor re-snapshots the name
	if upd.DoctorID != nil && *upd.DoctorID != stored.DoctorID {
		doctor, err := s.doctors.FindOne(ctx, *upd.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("resolve doctor %d: %w", *upd.DoctorID, err)
		}
		upd.DoctorName = &doctor.Name
	}

	return s.store.UpdateAppointment(ctx, id, upd)
}

// NextBooked returns the doctor's earliest remaining Booked appointment on
// date after afterTime, or ErrAppointmentNotFound.
func (s *AppointmentService) NextBooked(ctx context.Context, doctorID int64, date, afterTime string) (*Appointment, error) {
	return s.store.NextBookedAppointment(ctx, doctorID, date, afterTime)
}

// MarkCompleted sets an appointment's status without any doctor-name
// resolution. Missing ids are ignored.
func (s *AppointmentService) MarkCompleted(ctx context.Context, id int64) error {
	return s.store.SetAppointmentStatus(ctx, id, AppointmentCompleted)
}

func (s *AppointmentService) Remove(ctx context.Context, id int64) (bool, error) {
	return s.store.DeleteAppointment(ctx, id)
}
