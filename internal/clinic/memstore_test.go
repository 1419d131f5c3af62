package clinic

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memStore is an in-memory Store used by the service tests. It mirrors the
// Postgres store's semantics, including ordering and the not-found
// sentinels. updateDoctorErr, when set, makes UpdateDoctor fail so tests can
// observe the no-rollback behavior of multi-step side effects.
type memStore struct {
	mu           sync.Mutex
	nextID       int64
	doctors      map[int64]Doctor
	appointments map[int64]Appointment
	queue        map[int64]QueueEntry

	updateDoctorErr error
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		doctors:      make(map[int64]Doctor),
		appointments: make(map[int64]Appointment),
		queue:        make(map[int64]QueueEntry),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// Doctors

func (m *memStore) CreateDoctor(_ context.Context, d Doctor) (*Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d.ID = m.id()
	m.doctors[d.ID] = d
	return &d, nil
}

func (m *memStore) ListDoctors(_ context.Context, f DoctorFilter) ([]Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []Doctor
	for _, d := range m.doctors {
		if f.Specialization != "" && !containsFold(d.Specialization, f.Specialization) {
			continue
		}
		if f.Location != "" && !containsFold(d.Location, f.Location) {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *memStore) GetDoctorByID(_ context.Context, id int64) (*Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return &d, nil
}

func (m *memStore) UpdateDoctor(_ context.Context, id int64, upd DoctorUpdate) (*Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateDoctorErr != nil {
		return nil, m.updateDoctorErr
	}

	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Specialization != nil {
		d.Specialization = *upd.Specialization
	}
	if upd.Gender != nil {
		d.Gender = *upd.Gender
	}
	if upd.Location != nil {
		d.Location = *upd.Location
	}
	if upd.Status != nil {
		d.Status = *upd.Status
	}
	if upd.NextAvailable != nil {
		d.NextAvailable = *upd.NextAvailable
	}
	m.doctors[id] = d
	return &d, nil
}

func (m *memStore) DeleteDoctor(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.doctors[id]
	delete(m.doctors, id)
	return ok, nil
}

// Appointments

func (m *memStore) CreateAppointment(_ context.Context, a Appointment) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = m.id()
	if a.Status == "" {
		a.Status = AppointmentBooked
	}
	m.appointments[a.ID] = a
	return &a, nil
}

func (m *memStore) ListAppointments(_ context.Context, search string) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []Appointment
	for _, a := range m.appointments {
		if search != "" &&
			!strings.Contains(a.PatientName, search) &&
			!strings.Contains(a.DoctorName, search) {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (m *memStore) ListBookedAppointmentsByDoctor(_ context.Context, doctorID int64) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.Status == AppointmentBooked {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (m *memStore) GetAppointmentByID(_ context.Context, id int64) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (m *memStore) UpdateAppointment(_ context.Context, id int64, upd AppointmentUpdate) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	if upd.PatientName != nil {
		a.PatientName = *upd.PatientName
	}
	if upd.DoctorID != nil {
		a.DoctorID = *upd.DoctorID
	}
	if upd.DoctorName != nil {
		a.DoctorName = *upd.DoctorName
	}
	if upd.Date != nil {
		a.Date = *upd.Date
	}
	if upd.Time != nil {
		a.Time = *upd.Time
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	m.appointments[id] = a
	return &a, nil
}

func (m *memStore) SetAppointmentStatus(_ context.Context, id int64, status AppointmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appointments[id]
	if !ok {
		return nil
	}
	a.Status = status
	m.appointments[id] = a
	return nil
}

func (m *memStore) NextBookedAppointment(_ context.Context, doctorID int64, date, afterTime string) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var next *Appointment
	for _, a := range m.appointments {
		if a.DoctorID != doctorID || a.Status != AppointmentBooked || a.Date != date || a.Time <= afterTime {
			continue
		}
		if next == nil || a.Time < next.Time {
			appt := a
			next = &appt
		}
	}
	if next == nil {
		return nil, ErrAppointmentNotFound
	}
	return next, nil
}

func (m *memStore) DeleteAppointment(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.appointments[id]
	delete(m.appointments, id)
	return ok, nil
}

// Queue entries

func (m *memStore) CreateQueueEntry(_ context.Context, e QueueEntry) (*QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = m.id()
	e.CreatedAt = time.Now()
	m.queue[e.ID] = e
	return &e, nil
}

func (m *memStore) ListQueueEntries(_ context.Context) ([]QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []QueueEntry
	for _, e := range m.queue {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memStore) GetQueueEntryByID(_ context.Context, id int64) (*QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.queue[id]
	if !ok {
		return nil, ErrQueueEntryNotFound
	}
	return &e, nil
}

func (m *memStore) UpdateQueueEntry(_ context.Context, id int64, upd QueueUpdate) (*QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.queue[id]
	if !ok {
		return nil, ErrQueueEntryNotFound
	}
	if upd.PatientName != nil {
		e.PatientName = *upd.PatientName
	}
	if upd.Arrival != nil {
		e.Arrival = *upd.Arrival
	}
	if upd.EstWait != nil {
		e.EstWait = *upd.EstWait
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.Priority != nil {
		e.Priority = *upd.Priority
	}
	if upd.DoctorID != nil {
		e.DoctorID = upd.DoctorID
	}
	if upd.AppointmentID != nil {
		e.AppointmentID = upd.AppointmentID
	}
	m.queue[id] = e
	return &e, nil
}

func (m *memStore) DeleteQueueEntry(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.queue, id)
	return nil
}

func (m *memStore) ClearClinicData(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doctors = make(map[int64]Doctor)
	m.appointments = make(map[int64]Appointment)
	m.queue = make(map[int64]QueueEntry)
	return nil
}
