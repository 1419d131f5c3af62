package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/clinicdesk/clinic-backend/internal/auth"
	"github.com/clinicdesk/clinic-backend/internal/clinic"
	"github.com/clinicdesk/clinic-backend/internal/db"
)

const (
	demoUserEmail    = "admin@clinic.local"
	demoUserPassword = "admin123"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	extraDoctors := flag.Int("extra-doctors", 0, "randomized doctors to add on top of the demo dataset")
	extraWalkins := flag.Int("extra-walkins", 0, "randomized walk-in queue entries to add")
	flag.Parse()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	store := clinic.NewPgStore(pool)

	if err := clinic.NewSeeder(store).Run(context.Background()); err != nil {
		log.Fatalf("seed demo dataset: %v", err)
	}
	log.Println("demo dataset seeded")

	if err := ensureDemoUser(context.Background(), auth.NewPgStore(pool)); err != nil {
		log.Fatalf("seed demo user: %v", err)
	}
	log.Printf("demo user ready: %s", demoUserEmail)

	gofakeit.Seed(time.Now().UnixNano())

	if *extraDoctors > 0 {
		if err := seedExtraDoctors(context.Background(), store, *extraDoctors); err != nil {
			log.Fatalf("seed extra doctors: %v", err)
		}
	}
	if *extraWalkins > 0 {
		if err := seedExtraWalkins(context.Background(), store, *extraWalkins); err != nil {
			log.Fatalf("seed extra walk-ins: %v", err)
		}
	}

	log.Println("seed complete")
}

func ensureDemoUser(ctx context.Context, users *auth.PgStore) error {
	hash, err := auth.HashPassword(demoUserPassword, 10)
	if err != nil {
		return err
	}
	_, err = users.CreateUser(ctx, demoUserEmail, hash)
	if errors.Is(err, auth.ErrEmailTaken) {
		return nil
	}
	return err
}

func seedExtraDoctors(ctx context.Context, store *clinic.PgStore, count int) error {
	log.Printf("seeding %d extra doctors", count)

	specializations := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}
	genders := []string{"Female", "Male"}

	for i := 0; i < count; i++ {
		_, err := store.CreateDoctor(ctx, clinic.Doctor{
			Name:           "Dr. " + gofakeit.Name(),
			Specialization: specializations[gofakeit.Number(0, len(specializations)-1)],
			Gender:         genders[gofakeit.Number(0, 1)],
			Location:       fmt.Sprintf("Room %d", gofakeit.Number(100, 399)),
			Status:         clinic.DoctorAvailable,
			NextAvailable:  "Now",
		})
		if err != nil {
			return err
		}
	}

	log.Println("extra doctors seeded")
	return nil
}

func seedExtraWalkins(ctx context.Context, store *clinic.PgStore, count int) error {
	log.Printf("seeding %d extra walk-ins", count)

	for i := 0; i < count; i++ {
		arrival := gofakeit.DateRange(
			time.Now().Add(-4*time.Hour),
			time.Now(),
		).Format("03:04 PM")

		priority := clinic.PriorityNormal
		if gofakeit.Number(0, 9) == 0 {
			priority = clinic.PriorityUrgent
		}

		_, err := store.CreateQueueEntry(ctx, clinic.QueueEntry{
			PatientName: gofakeit.Name(),
			Arrival:     arrival,
			EstWait:     fmt.Sprintf("%d min", gofakeit.Number(5, 90)),
			Status:      clinic.QueueWaiting,
			Priority:    priority,
		})
		if err != nil {
			return err
		}
	}

	log.Println("extra walk-ins seeded")
	return nil
}
