package clinic

import "time"

type DoctorStatus string

const (
	DoctorAvailable DoctorStatus = "Available"
	DoctorBusy      DoctorStatus = "Busy"
	DoctorOffDuty   DoctorStatus = "Off Duty"
)

type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "Booked"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCanceled  AppointmentStatus = "Canceled"
)

type QueueStatus string

const (
	QueueWaiting    QueueStatus = "Waiting"
	QueueWithDoctor QueueStatus = "With Doctor"
	QueueCompleted  QueueStatus = "Completed"
)

type Priority string

const (
	PriorityNormal Priority = "Normal"
	PriorityUrgent Priority = "Urgent"
)

type Doctor struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Specialization string       `json:"specialization"`
	Gender         string       `json:"gender"`
	Location       string       `json:"location"`
	Status         DoctorStatus `json:"status"`
	NextAvailable  string       `json:"nextAvailable"`
}

// Appointment carries doctorName as a snapshot of the doctor's name at the
// time the appointment was created or last repointed at another doctor.
type Appointment struct {
	ID          int64             `json:"id"`
	PatientName string            `json:"patientName"`
	DoctorName  string            `json:"doctorName"`
	DoctorID    int64             `json:"doctorId"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Time        string            `json:"time"` // HH:MM
	Status      AppointmentStatus `json:"status"`
}

// QueueEntry is a patient in the waiting room. Walk-ins have neither
// doctorId nor appointmentId; entries that originate from a scheduled
// appointment have both.
type QueueEntry struct {
	ID            int64       `json:"id"`
	PatientName   string      `json:"patientName"`
	Arrival       string      `json:"arrival"`
	EstWait       string      `json:"estWait"`
	Status        QueueStatus `json:"status"`
	Priority      Priority    `json:"priority"`
	DoctorID      *int64      `json:"doctorId"`
	AppointmentID *int64      `json:"appointmentId"`
	CreatedAt     time.Time   `json:"createdAt"`
}
