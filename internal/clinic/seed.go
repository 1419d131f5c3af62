package clinic

import (
	"context"
	"fmt"
	"time"
)

// Seeder resets the clinic stores and loads the demo dataset.
type Seeder struct {
	store Store
}

func NewSeeder(store Store) *Seeder {
	return &Seeder{store: store}
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.store.ClearClinicData(ctx); err != nil {
		return err
	}

	doctors := []Doctor{
		{Name: "Dr. Evelyn Reed", Specialization: "General Practice", Gender: "Female", Location: "Room 101", Status: DoctorAvailable, NextAvailable: "Now"},
		{Name: "Dr. Marcus Chen", Specialization: "Pediatrics", Gender: "Male", Location: "Room 102", Status: DoctorBusy, NextAvailable: "Now"},
		{Name: "Dr. Sofia Rossi", Specialization: "Cardiology", Gender: "Female", Location: "Room 201", Status: DoctorOffDuty, NextAvailable: "Tomorrow 9:00 AM"},
		{Name: "Dr. Leo Grant", Specialization: "Dermatology", Gender: "Male", Location: "Room 202", Status: DoctorAvailable, NextAvailable: "Now"},
	}

	created := make([]*Doctor, 0, len(doctors))
	for _, d := range doctors {
		doc, err := s.store.CreateDoctor(ctx, d)
		if err != nil {
			return fmt.Errorf("seed doctor %q: %w", d.Name, err)
		}
		created = append(created, doc)
	}

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	appointments := []Appointment{
		{PatientName: "Alice Brown", DoctorID: created[0].ID, DoctorName: created[0].Name, Date: today, Time: "10:00", Status: AppointmentBooked},
		{PatientName: "Charlie Davis", DoctorID: created[1].ID, DoctorName: created[1].Name, Date: today, Time: "11:30", Status: AppointmentBooked},
		{PatientName: "Eva White", DoctorID: created[0].ID, DoctorName: created[0].Name, Date: tomorrow, Time: "14:00", Status: AppointmentBooked},
	}

	booked := make([]*Appointment, 0, len(appointments))
	for _, a := range appointments {
		appt, err := s.store.CreateAppointment(ctx, a)
		if err != nil {
			return fmt.Errorf("seed appointment for %q: %w", a.PatientName, err)
		}
		booked = append(booked, appt)
	}

	entries := []QueueEntry{
		{PatientName: "John Doe", Arrival: "09:30 AM", EstWait: "15 min", Status: QueueWaiting, Priority: PriorityNormal},
		{PatientName: "Jane Smith", Arrival: "09:45 AM", EstWait: "0 min", Status: QueueWithDoctor, Priority: PriorityNormal, DoctorID: &created[1].ID, AppointmentID: &booked[1].ID},
	}

	for _, e := range entries {
		if _, err := s.store.CreateQueueEntry(ctx, e); err != nil {
			return fmt.Errorf("seed queue entry for %q: %w", e.PatientName, err)
		}
	}

	return nil
}
