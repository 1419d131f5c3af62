package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
)

// Request DTOs. Required fields and allowed enum values are enumerated in
// the Validate methods, which run before any service call.

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("email must be a valid address")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type CreateDoctorRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Gender         string `json:"gender"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	NextAvailable  string `json:"nextAvailable"`
}

func (r CreateDoctorRequest) Validate() error {
	for field, v := range map[string]string{
		"name":           r.Name,
		"specialization": r.Specialization,
		"gender":         r.Gender,
		"location":       r.Location,
		"nextAvailable":  r.NextAvailable,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	if r.Status != "" && !validDoctorStatus(r.Status) {
		return fmt.Errorf("status must be one of Available, Busy, Off Duty")
	}
	return nil
}

func (r CreateDoctorRequest) ToDoctor() clinic.Doctor {
	return clinic.Doctor{
		Name:           r.Name,
		Specialization: r.Specialization,
		Gender:         r.Gender,
		Location:       r.Location,
		Status:         clinic.DoctorStatus(r.Status),
		NextAvailable:  r.NextAvailable,
	}
}

type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Gender         *string `json:"gender"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	NextAvailable  *string `json:"nextAvailable"`
}

func (r UpdateDoctorRequest) Validate() error {
	if r.Status != nil && !validDoctorStatus(*r.Status) {
		return fmt.Errorf("status must be one of Available, Busy, Off Duty")
	}
	return nil
}

func (r UpdateDoctorRequest) ToUpdate() clinic.DoctorUpdate {
	upd := clinic.DoctorUpdate{
		Name:           r.Name,
		Specialization: r.Specialization,
		Gender:         r.Gender,
		Location:       r.Location,
		NextAvailable:  r.NextAvailable,
	}
	if r.Status != nil {
		status := clinic.DoctorStatus(*r.Status)
		upd.Status = &status
	}
	return upd
}

type CreateAppointmentRequest struct {
	PatientName string `json:"patientName"`
	DoctorID    int64  `json:"doctorId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

func (r CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.PatientName) == "" {
		return fmt.Errorf("patientName is required")
	}
	if r.DoctorID <= 0 {
		return fmt.Errorf("doctorId is required")
	}
	if !validDate(r.Date) {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if !validClockTime(r.Time) {
		return fmt.Errorf("time must be HH:MM")
	}
	if r.Status != "" && !validAppointmentStatus(r.Status) {
		return fmt.Errorf("status must be one of Booked, Completed, Canceled")
	}
	return nil
}

func (r CreateAppointmentRequest) ToAppointment() clinic.Appointment {
	return clinic.Appointment{
		PatientName: r.PatientName,
		DoctorID:    r.DoctorID,
		Date:        r.Date,
		Time:        r.Time,
		Status:      clinic.AppointmentStatus(r.Status),
	}
}

type UpdateAppointmentRequest struct {
	PatientName *string `json:"patientName"`
	DoctorID    *int64  `json:"doctorId"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Status      *string `json:"status"`
}

func (r UpdateAppointmentRequest) Validate() error {
	if r.PatientName != nil && strings.TrimSpace(*r.PatientName) == "" {
		return fmt.Errorf("patientName must not be empty")
	}
	if r.DoctorID != nil && *r.DoctorID <= 0 {
		return fmt.Errorf("doctorId must be positive")
	}
	if r.Date != nil && !validDate(*r.Date) {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if r.Time != nil && !validClockTime(*r.Time) {
		return fmt.Errorf("time must be HH:MM")
	}
	if r.Status != nil && !validAppointmentStatus(*r.Status) {
		return fmt.Errorf("status must be one of Booked, Completed, Canceled")
	}
	return nil
}

func (r UpdateAppointmentRequest) ToUpdate() clinic.AppointmentUpdate {
	upd := clinic.AppointmentUpdate{
		PatientName: r.PatientName,
		DoctorID:    r.DoctorID,
		Date:        r.Date,
		Time:        r.Time,
	}
	if r.Status != nil {
		status := clinic.AppointmentStatus(*r.Status)
		upd.Status = &status
	}
	return upd
}

type CreateQueueRequest struct {
	PatientName   string `json:"patientName"`
	Arrival       string `json:"arrival"`
	EstWait       string `json:"estWait"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	DoctorID      *int64 `json:"doctorId"`
	AppointmentID *int64 `json:"appointmentId"`
}

func (r CreateQueueRequest) Validate() error {
	for field, v := range map[string]string{
		"patientName": r.PatientName,
		"arrival":     r.Arrival,
		"estWait":     r.EstWait,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	if r.Status != "" && !validQueueStatus(r.Status) {
		return fmt.Errorf("status must be one of Waiting, With Doctor, Completed")
	}
	if r.Priority != "" && !validPriority(r.Priority) {
		return fmt.Errorf("priority must be one of Normal, Urgent")
	}
	if r.DoctorID != nil && *r.DoctorID <= 0 {
		return fmt.Errorf("doctorId must be positive")
	}
	if r.AppointmentID != nil && *r.AppointmentID <= 0 {
		return fmt.Errorf("appointmentId must be positive")
	}
	return nil
}

func (r CreateQueueRequest) ToQueueEntry() clinic.QueueEntry {
	return clinic.QueueEntry{
		PatientName:   r.PatientName,
		Arrival:       r.Arrival,
		EstWait:       r.EstWait,
		Status:        clinic.QueueStatus(r.Status),
		Priority:      clinic.Priority(r.Priority),
		DoctorID:      r.DoctorID,
		AppointmentID: r.AppointmentID,
	}
}

type UpdateQueueRequest struct {
	PatientName   *string `json:"patientName"`
	Arrival       *string `json:"arrival"`
	EstWait       *string `json:"estWait"`
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	DoctorID      *int64  `json:"doctorId"`
	AppointmentID *int64  `json:"appointmentId"`
}

func (r UpdateQueueRequest) Validate() error {
	if r.Status != nil && !validQueueStatus(*r.Status) {
		return fmt.Errorf("status must be one of Waiting, With Doctor, Completed")
	}
	if r.Priority != nil && !validPriority(*r.Priority) {
		return fmt.Errorf("priority must be one of Normal, Urgent")
	}
	if r.DoctorID != nil && *r.DoctorID <= 0 {
		return fmt.Errorf("doctorId must be positive")
	}
	if r.AppointmentID != nil && *r.AppointmentID <= 0 {
		return fmt.Errorf("appointmentId must be positive")
	}
	return nil
}

func (r UpdateQueueRequest) ToUpdate() clinic.QueueUpdate {
	upd := clinic.QueueUpdate{
		PatientName:   r.PatientName,
		Arrival:       r.Arrival,
		EstWait:       r.EstWait,
		DoctorID:      r.DoctorID,
		AppointmentID: r.AppointmentID,
	}
	if r.Status != nil {
		status := clinic.QueueStatus(*r.Status)
		upd.Status = &status
	}
	if r.Priority != nil {
		priority := clinic.Priority(*r.Priority)
		upd.Priority = &priority
	}
	return upd
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

func validDoctorStatus(s string) bool {
	switch clinic.DoctorStatus(s) {
	case clinic.DoctorAvailable, clinic.DoctorBusy, clinic.DoctorOffDuty:
		return true
	}
	return false
}

func validAppointmentStatus(s string) bool {
	switch clinic.AppointmentStatus(s) {
	case clinic.AppointmentBooked, clinic.AppointmentCompleted, clinic.AppointmentCanceled:
		return true
	}
	return false
}

func validQueueStatus(s string) bool {
	switch clinic.QueueStatus(s) {
	case clinic.QueueWaiting, clinic.QueueWithDoctor, clinic.QueueCompleted:
		return true
	}
	return false
}

func validPriority(s string) bool {
	switch clinic.Priority(s) {
	case clinic.PriorityNormal, clinic.PriorityUrgent:
		return true
	}
	return false
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
