package clinic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queueFixture struct {
	store        *memStore
	doctors      *DoctorService
	appointments *AppointmentService
	queue        *QueueService
}

// newQueueFixture pins the clock to 10:00 on a fixed day so availability
// resync cutoffs are deterministic.
func newQueueFixture(t *testing.T) *queueFixture {
	t.Helper()
	store := newMemStore()
	doctors := NewDoctorService(store)
	appointments := NewAppointmentService(store, doctors)
	queue := NewQueueService(store, doctors, appointments).WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	})
	return &queueFixture{
		store:        store,
		doctors:      doctors,
		appointments: appointments,
		queue:        queue,
	}
}

const fixtureToday = "2026-09-01"

func (f *queueFixture) addDoctor(t *testing.T, status DoctorStatus, nextAvailable string) *Doctor {
	t.Helper()
	doc, err := f.doctors.Create(context.Background(), Doctor{
		Name:           "Dr. Evelyn Reed",
		Specialization: "General Practice",
		Gender:         "Female",
		Location:       "Room 101",
		Status:         status,
		NextAvailable:  nextAvailable,
	})
	require.NoError(t, err)
	return doc
}

func (f *queueFixture) addAppointment(t *testing.T, doctorID int64, date, hhmm string) *Appointment {
	t.Helper()
	appt, err := f.appointments.Create(context.Background(), Appointment{
		PatientName: "Alice Brown",
		DoctorID:    doctorID,
		Date:        date,
		Time:        hhmm,
	})
	require.NoError(t, err)
	return appt
}

func (f *queueFixture) addEntry(t *testing.T, e QueueEntry) *QueueEntry {
	t.Helper()
	entry, err := f.queue.Create(context.Background(), e)
	require.NoError(t, err)
	return entry
}

func statusPtr(s QueueStatus) *QueueStatus { return &s }

func TestQueueCreateDefaults(t *testing.T) {
	f := newQueueFixture(t)

	entry := f.addEntry(t, QueueEntry{PatientName: "John Doe", Arrival: "09:30 AM", EstWait: "15 min"})

	assert.Equal(t, QueueWaiting, entry.Status)
	assert.Equal(t, PriorityNormal, entry.Priority)
	assert.Nil(t, entry.DoctorID)
	assert.Nil(t, entry.AppointmentID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestQueueUpdateNotFound(t *testing.T) {
	f := newQueueFixture(t)

	_, err := f.queue.Update(context.Background(), 9, QueueUpdate{Status: statusPtr(QueueCompleted)})
	assert.ErrorIs(t, err, ErrQueueEntryNotFound)
}

func TestQueueWithDoctorMarksDoctorBusy(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	// prior status is irrelevant, even Off Duty becomes Busy
	doc := f.addDoctor(t, DoctorOffDuty, "Tomorrow 9:00 AM")
	entry := f.addEntry(t, QueueEntry{PatientName: "John Doe", Arrival: "09:30 AM", EstWait: "15 min"})

	updated, err := f.queue.Update(ctx, entry.ID, QueueUpdate{
		Status:   statusPtr(QueueWithDoctor),
		DoctorID: &doc.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, QueueWithDoctor, updated.Status)
	assert.Equal(t, doc.ID, *updated.DoctorID)

	after, err := f.doctors.FindOne(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorBusy, after.Status)
	// nextAvailable is untouched by the busy transition
	assert.Equal(t, "Tomorrow 9:00 AM", after.NextAvailable)
}

func TestQueueWithDoctorWithoutDoctorIDHasNoSideEffect(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	doc := f.addDoctor(t, DoctorAvailable, "Now")
	entry := f.addEntry(t, QueueEntry{PatientName: "John Doe", Arrival: "09:30 AM", EstWait: "15 min", DoctorID: &doc.ID})

	// stored doctorId alone does not trigger the busy transition
	_, err := f.queue.Update(ctx, entry.ID, QueueUpdate{Status: statusPtr(QueueWithDoctor)})
	require.NoError(t, err)

	after, err := f.doctors.FindOne(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorAvailable, after.Status)
}

func TestQueueCompleteMarksAppointmentAndResyncsDoctor(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	// mirrors the walk-through: Off Duty doctor, own appointment later today,
	// no other bookings. The entry's own appointment is completed before the
	// resync query runs, so it is excluded and the doctor ends up "Now".
	doc := f.addDoctor(t, DoctorOffDuty, "Tomorrow 9:00 AM")
	appt := f.addAppointment(t, doc.ID, fixtureToday, "23:59")
	entry := f.addEntry(t, QueueEntry{
		PatientName:   "Jane Smith",
		Arrival:       "09:45 AM",
		EstWait:       "0 min",
		Status:        QueueWithDoctor,
		DoctorID:      &doc.ID,
		AppointmentID: &appt.ID,
	})

	updated, err := f.queue.Update(ctx, entry.ID, QueueUpdate{Status: statusPtr(QueueCompleted)})
	require.NoError(t, err)
	assert.Equal(t, QueueCompleted, updated.Status)

	after, err := f.appointments.FindOne(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, AppointmentCompleted, after.Status)

	docAfter, err := f.doctors.FindOne(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorAvailable, docAfter.Status)
	assert.Equal(t, "Now", docAfter.NextAvailable)
}

func TestQueueCompleteResyncPicksNextBookedToday(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	doc := f.addDoctor(t, DoctorBusy, "Now")
	appt := f.addAppointment(t, doc.ID, fixtureToday, "10:30")
	// candidates the resync must skip: earlier than now, other date, other
	// doctor, non-Booked status
	f.addAppointment(t, doc.ID, fixtureToday, "09:00")
	f.addAppointment(t, doc.ID, "2026-09-02", "10:15")
	other := f.addDoctor(t, DoctorAvailable, "Now")
	f.addAppointment(t, other.ID, fixtureToday, "10:05")
	canceled := f.addAppointment(t, doc.ID, fixtureToday, "10:10")
	cs := AppointmentCanceled
	_, err := f.appointments.Update(ctx, canceled.ID, AppointmentUpdate{Status: &cs})
	require.NoError(t, err)

	f.addAppointment(t, doc.ID, fixtureToday, "15:00")

	entry := f.addEntry(t, QueueEntry{
		PatientName: "Jane Smith",
		Arrival:     "09:45 AM",
		EstWait:     "0 min",
		Status:      QueueWithDoctor,
		DoctorID:    &doc.ID,
	})

	_, err = f.queue.Update(ctx, entry.ID, QueueUpdate{Status: statusPtr(QueueCompleted)})
	require.NoError(t, err)

	docAfter, err := f.doctors.FindOne(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorAvailable, docAfter.Status)
	assert.Equal(t, appt.Time, docAfter.NextAvailable)
}

func TestQueueCompleteReadsStoredDoctorNotIncoming(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	stored := f.addDoctor(t, DoctorBusy, "Now")
	incoming := f.addDoctor(t, DoctorBusy, "Now")

	entry := f.addEntry(t, QueueEntry{
		PatientName: "Jane Smith",
		Arrival:     "09:45 AM",
		EstWait:     "0 min",
		Status:      QueueWithDoctor,
		DoctorID:    &stored.ID,
	})

	// the completion resyncs the doctor who was treating the patient, not
	// the one named in the update
	_, err := f.queue.Update(ctx, entry.ID, QueueUpdate{
		Status:   statusPtr(QueueCompleted),
		DoctorID: &incoming.ID,
	})
	require.NoError(t, err)

	storedAfter, err := f.doctors.FindOne(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorAvailable, storedAfter.Status)

	incomingAfter, err := f.doctors.FindOne(ctx, incoming.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorBusy, incomingAfter.Status)
}

func TestQueueCompleteWalkInWithoutDoctorHasNoSideEffects(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	doc := f.addDoctor(t, DoctorBusy, "Now")
	entry := f.addEntry(t, QueueEntry{PatientName: "John Doe", Arrival: "09:30 AM", EstWait: "15 min"})

	updated, err := f.queue.Update(ctx, entry.ID, QueueUpdate{Status: statusPtr(QueueCompleted)})
	require.NoError(t, err)
	assert.Equal(t, QueueCompleted, updated.Status)

	after, err := f.doctors.FindOne(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorBusy, after.Status)
}

func TestQueueRemoveResyncsDoctorWithoutTouchingAppointment(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	doc := f.addDoctor(t, DoctorBusy, "Now")
	appt := f.addAppointment(t, doc.ID, fixtureToday, "23:59")
	entry := f.addEntry(t, QueueEntry{
		PatientName:   "Jane Smith",
		Arrival:       "09:45 AM",
		EstWait:       "0 min",
		Status:        QueueWithDoctor,
		DoctorID:      &doc.ID,
		AppointmentID: &appt.ID,
	})

	require.NoError(t, f.queue.Remove(ctx, entry.ID))

	// the appointment keeps its status, unlike an explicit completion
	apptAfter, err := f.appointments.FindOne(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, AppointmentBooked, apptAfter.Status)

	// the doctor is freed; the still-Booked appointment is the next slot
	docAfter, err := f.doctors.FindOne(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, DoctorAvailable, docAfter.Status)
	assert.Equal(t, "23:59", docAfter.NextAvailable)

	_, err = f.queue.FindOne(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrQueueEntryNotFound)
}

func TestQueueRemoveIsIdempotent(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	entry := f.addEntry(t, QueueEntry{PatientName: "John Doe", Arrival: "09:30 AM", EstWait: "15 min"})

	require.NoError(t, f.queue.Remove(ctx, entry.ID))
	require.NoError(t, f.queue.Remove(ctx, entry.ID))
	require.NoError(t, f.queue.Remove(ctx, 404))
}

func TestQueueAcceptsAnyDeclaredStatusTransition(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	entry := f.addEntry(t, QueueEntry{PatientName: "John Doe", Arrival: "09:30 AM", EstWait: "15 min", Status: QueueCompleted})

	// transitions are not a strict state machine: Completed back to Waiting
	// is accepted
	updated, err := f.queue.Update(ctx, entry.ID, QueueUpdate{Status: statusPtr(QueueWaiting)})
	require.NoError(t, err)
	assert.Equal(t, QueueWaiting, updated.Status)
}

func TestQueueCompleteDoesNotRollBackOnLaterFailure(t *testing.T) {
	f := newQueueFixture(t)
	ctx := context.Background()

	doc := f.addDoctor(t, DoctorBusy, "Now")
	appt := f.addAppointment(t, doc.ID, fixtureToday, "23:59")
	entry := f.addEntry(t, QueueEntry{
		PatientName:   "Jane Smith",
		Arrival:       "09:45 AM",
		EstWait:       "0 min",
		Status:        QueueWithDoctor,
		DoctorID:      &doc.ID,
		AppointmentID: &appt.ID,
	})

	storeErr := errors.New("store unavailable")
	f.store.updateDoctorErr = storeErr

	_, err := f.queue.Update(ctx, entry.ID, QueueUpdate{Status: statusPtr(QueueCompleted)})
	assert.ErrorIs(t, err, storeErr)

	// the appointment completion committed even though the doctor resync
	// failed; the entry itself was never updated
	apptAfter, err := f.appointments.FindOne(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, AppointmentCompleted, apptAfter.Status)

	entryAfter, err := f.queue.FindOne(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, QueueWithDoctor, entryAfter.Status)
}
