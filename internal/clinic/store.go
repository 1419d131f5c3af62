package clinic

import (
	"context"
	"errors"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrQueueEntryNotFound  = errors.New("queue entry not found")
)

// DoctorFilter narrows ListDoctors. Zero values impose no constraint;
// specialization and location are case-insensitive substring matches,
// status is an exact match. Supplied filters are ANDed.
type DoctorFilter struct {
	Specialization string
	Location       string
	Status         DoctorStatus
}

// Partial-update field sets. Nil fields are left untouched.

type DoctorUpdate struct {
	Name           *string
	Specialization *string
	Gender         *string
	Location       *string
	Status         *DoctorStatus
	NextAvailable  *string
}

type AppointmentUpdate struct {
	PatientName *string
	DoctorID    *int64
	DoctorName  *string
	Date        *string
	Time        *string
	Status      *AppointmentStatus
}

type QueueUpdate struct {
	PatientName   *string
	Arrival       *string
	EstWait       *string
	Status        *QueueStatus
	Priority      *Priority
	DoctorID      *int64
	AppointmentID *int64
}

// Store contains all record store interactions needed by the services.
// Single-row lookups return the entity's sentinel not-found error when the
// id does not exist; update methods do the same via their RETURNING row.
type Store interface {
	CreateDoctor(ctx context.Context, d Doctor) (*Doctor, error)
	ListDoctors(ctx context.Context, f DoctorFilter) ([]Doctor, error)
	GetDoctorByID(ctx context.Context, id int64) (*Doctor, error)
	UpdateDoctor(ctx context.Context, id int64, upd DoctorUpdate) (*Doctor, error)
	DeleteDoctor(ctx context.Context, id int64) (bool, error)

	CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error)
	// ListAppointments returns all appointments, or only those whose
	// patientName or doctorName contains search (case-sensitive) when it is
	// non-empty. Ordered by date descending then time ascending.
	ListAppointments(ctx context.Context, search string) ([]Appointment, error)
	// ListBookedAppointmentsByDoctor returns the doctor's Booked
	// appointments ordered by date ascending then time ascending.
	ListBookedAppointmentsByDoctor(ctx context.Context, doctorID int64) ([]Appointment, error)
	GetAppointmentByID(ctx context.Context, id int64) (*Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, upd AppointmentUpdate) (*Appointment, error)
	// SetAppointmentStatus is a fire-and-forget status write: updating a
	// missing appointment is not an error.
	SetAppointmentStatus(ctx context.Context, id int64, status AppointmentStatus) error
	// NextBookedAppointment returns the doctor's earliest Booked appointment
	// on the given date with time strictly after afterTime, or
	// ErrAppointmentNotFound when there is none.
	NextBookedAppointment(ctx context.Context, doctorID int64, date, afterTime string) (*Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) (bool, error)

	CreateQueueEntry(ctx context.Context, e QueueEntry) (*QueueEntry, error)
	ListQueueEntries(ctx context.Context) ([]QueueEntry, error)
	GetQueueEntryByID(ctx context.Context, id int64) (*QueueEntry, error)
	UpdateQueueEntry(ctx context.Context, id int64, upd QueueUpdate) (*QueueEntry, error)
	// DeleteQueueEntry is idempotent: deleting a missing entry succeeds.
	DeleteQueueEntry(ctx context.Context, id int64) error

	// ClearClinicData wipes doctors, appointments and queue entries. Used by
	// the seeder; users are untouched.
	ClearClinicData(ctx context.Context) error
}
