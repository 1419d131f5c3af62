package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Helpers

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Gender,
		&d.Location,
		&d.Status,
		&d.NextAvailable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	return &d, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.PatientName,
		&a.DoctorName,
		&a.DoctorID,
		&a.Date,
		&a.Time,
		&a.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func scanQueueEntry(row pgx.Row) (*QueueEntry, error) {
	var e QueueEntry
	var doctorID, appointmentID *int64

	err := row.Scan(
		&e.ID,
		&e.PatientName,
		&e.Arrival,
		&e.EstWait,
		&e.Status,
		&e.Priority,
		&doctorID,
		&appointmentID,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQueueEntryNotFound
		}
		return nil, err
	}

	e.DoctorID = doctorID
	e.AppointmentID = appointmentID
	return &e, nil
}

// setClause collects "col = $n" assignments for partial updates. $1 is
// always the row id, so assignments start at $2.
type setClause struct {
	cols []string
	args []any
}

func newSetClause(id int64) *setClause {
	return &setClause{args: []any{id}}
}

func (c *setClause) add(col string, v any) {
	c.args = append(c.args, v)
	c.cols = append(c.cols, fmt.Sprintf("%s = $%d", col, len(c.args)))
}

func (c *setClause) empty() bool {
	return len(c.cols) == 0
}

func (c *setClause) assignments() string {
	return strings.Join(c.cols, ", ")
}

// Doctors

const doctorColumns = "id, name, specialization, gender, location, status, next_available"

func (s *PgStore) CreateDoctor(ctx context.Context, d Doctor) (*Doctor, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO doctors (name, specialization, gender, location, status, next_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+doctorColumns+`
	`, d.Name, d.Specialization, d.Gender, d.Location, d.Status, d.NextAvailable)
	return scanDoctor(row)
}

func (s *PgStore) ListDoctors(ctx context.Context, f DoctorFilter) ([]Doctor, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Specialization != "" {
		where = append(where, fmt.Sprintf("specialization ILIKE '%%' || %s || '%%'", arg(f.Specialization)))
	}
	if f.Location != "" {
		where = append(where, fmt.Sprintf("location ILIKE '%%' || %s || '%%'", arg(f.Location)))
	}
	if f.Status != "" {
		where = append(where, fmt.Sprintf("status = %s", arg(f.Status)))
	}

	query := `SELECT ` + doctorColumns + ` FROM doctors`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *PgStore) GetDoctorByID(ctx context.Context, id int64) (*Doctor, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE id = $1
	`, id)
	return scanDoctor(row)
}

func (s *PgStore) UpdateDoctor(ctx context.Context, id int64, upd DoctorUpdate) (*Doctor, error) {
	set := newSetClause(id)
	if upd.Name != nil {
		set.add("name", *upd.Name)
	}
	if upd.Specialization != nil {
		set.add("specialization", *upd.Specialization)
	}
	if upd.Gender != nil {
		set.add("gender", *upd.Gender)
	}
	if upd.Location != nil {
		set.add("location", *upd.Location)
	}
	if upd.Status != nil {
		set.add("status", *upd.Status)
	}
	if upd.NextAvailable != nil {
		set.add("next_available", *upd.NextAvailable)
	}

	if set.empty() {
		return s.GetDoctorByID(ctx, id)
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE doctors
		SET %s
		WHERE id = $1
		RETURNING %s
	`, set.assignments(), doctorColumns), set.args...)
	return scanDoctor(row)
}

func (s *PgStore) DeleteDoctor(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Appointments

const appointmentColumns = "id, patient_name, doctor_name, doctor_id, date, time, status"

func (s *PgStore) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO appointments (patient_name, doctor_name, doctor_id, date, time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+appointmentColumns+`
	`, a.PatientName, a.DoctorName, a.DoctorID, a.Date, a.Time, a.Status)
	return scanAppointment(row)
}

func (s *PgStore) ListAppointments(ctx context.Context, search string) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	args := []any{}
	if search != "" {
		// LIKE, not ILIKE: the search is case-sensitive
		query += ` WHERE patient_name LIKE '%' || $1 || '%' OR doctor_name LIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY date DESC, time ASC`

	return s.queryAppointments(ctx, query, args...)
}

func (s *PgStore) ListBookedAppointmentsByDoctor(ctx context.Context, doctorID int64) ([]Appointment, error) {
	return s.queryAppointments(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id = $1 AND status = $2
		ORDER BY date ASC, time ASC
	`, doctorID, AppointmentBooked)
}

func (s *PgStore) queryAppointments(ctx context.Context, query string, args ...any) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *PgStore) GetAppointmentByID(ctx context.Context, id int64) (*Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (s *PgStore) UpdateAppointment(ctx context.Context, id int64, upd AppointmentUpdate) (*Appointment, error) {
	set := newSetClause(id)
	if upd.PatientName != nil {
		set.add("patient_name", *upd.PatientName)
	}
	if upd.DoctorID != nil {
		set.add("doctor_id", *upd.DoctorID)
	}
	if upd.DoctorName != nil {
		set.add("doctor_name", *upd.DoctorName)
	}
	if upd.Date != nil {
		set.add("date", *upd.Date)
	}
	if upd.Time != nil {
		set.add("time", *upd.Time)
	}
	if upd.Status != nil {
		set.add("status", *upd.Status)
	}

	if set.empty() {
		return s.GetAppointmentByID(ctx, id)
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE appointments
		SET %s
		WHERE id = $1
		RETURNING %s
	`, set.assignments(), appointmentColumns), set.args...)
	return scanAppointment(row)
}

func (s *PgStore) SetAppointmentStatus(ctx context.Context, id int64, status AppointmentStatus) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE appointments SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("set appointment status: %w", err)
	}
	return nil
}

func (s *PgStore) NextBookedAppointment(ctx context.Context, doctorID int64, date, afterTime string) (*Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id = $1 AND status = $2 AND date = $3 AND time > $4
		ORDER BY time ASC
		LIMIT 1
	`, doctorID, AppointmentBooked, date, afterTime)
	return scanAppointment(row)
}

func (s *PgStore) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Queue entries

const queueColumns = "id, patient_name, arrival, est_wait, status, priority, doctor_id, appointment_id, created_at"

func (s *PgStore) CreateQueueEntry(ctx context.Context, e QueueEntry) (*QueueEntry, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO queue_entries (patient_name, arrival, est_wait, status, priority, doctor_id, appointment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+queueColumns+`
	`, e.PatientName, e.Arrival, e.EstWait, e.Status, e.Priority, e.DoctorID, e.AppointmentID)
	return scanQueueEntry(row)
}

func (s *PgStore) ListQueueEntries(ctx context.Context) ([]QueueEntry, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+queueColumns+` FROM queue_entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []QueueEntry
	for rows.Next() {
		e, err := scanQueueEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *PgStore) GetQueueEntryByID(ctx context.Context, id int64) (*QueueEntry, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+queueColumns+`
		FROM queue_entries
		WHERE id = $1
	`, id)
	return scanQueueEntry(row)
}

func (s *PgStore) UpdateQueueEntry(ctx context.Context, id int64, upd QueueUpdate) (*QueueEntry, error) {
	set := newSetClause(id)
	if upd.PatientName != nil {
		set.add("patient_name", *upd.PatientName)
	}
	if upd.Arrival != nil {
		set.add("arrival", *upd.Arrival)
	}
	if upd.EstWait != nil {
		set.add("est_wait", *upd.EstWait)
	}
	if upd.Status != nil {
		set.add("status", *upd.Status)
	}
	if upd.Priority != nil {
		set.add("priority", *upd.Priority)
	}
	if upd.DoctorID != nil {
		set.add("doctor_id", *upd.DoctorID)
	}
	if upd.AppointmentID != nil {
		set.add("appointment_id", *upd.AppointmentID)
	}

	if set.empty() {
		return s.GetQueueEntryByID(ctx, id)
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE queue_entries
		SET %s
		WHERE id = $1
		RETURNING %s
	`, set.assignments(), queueColumns), set.args...)
	return scanQueueEntry(row)
}

func (s *PgStore) DeleteQueueEntry(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM queue_entries WHERE id = $1`, id)
	return err
}

func (s *PgStore) ClearClinicData(ctx context.Context) error {
	for _, table := range []string{"queue_entries", "appointments", "doctors"} {
		if _, err := s.pool.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
