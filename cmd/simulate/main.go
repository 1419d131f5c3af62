package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

type SimConfig struct {
	APIBaseURL string
	Duration   time.Duration
	Workers    int
	RemoveRate float64 // fraction of entries removed instead of completed
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	p50 = latencies[len(latencies)*50/100]
	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, p50, p95
}

type Metrics struct {
	Enqueue  OperationMetrics
	Assign   OperationMetrics
	Complete OperationMetrics
	Remove   OperationMetrics
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	token   string
	doctors []int64
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := SimConfig{}
	flag.StringVar(&cfg.APIBaseURL, "base-url", "http://127.0.0.1:8080", "API base URL")
	flag.DurationVar(&cfg.Duration, "duration", 30*time.Second, "how long to run")
	flag.IntVar(&cfg.Workers, "workers", 8, "concurrent workers")
	flag.Float64Var(&cfg.RemoveRate, "remove-rate", 0.2, "fraction of entries removed instead of completed")
	flag.Parse()

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	if err := sim.login(); err != nil {
		log.Fatalf("login: %v", err)
	}
	if err := sim.loadDoctors(); err != nil {
		log.Fatalf("load doctors: %v", err)
	}
	if len(sim.doctors) == 0 {
		log.Fatal("no doctors found, run the seed binary first")
	}

	log.Printf("simulating against %s: workers=%d duration=%s doctors=%d",
		cfg.APIBaseURL, cfg.Workers, cfg.Duration, len(sim.doctors))

	deadline := time.Now().Add(cfg.Duration)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				sim.runVisit()
			}
		}()
	}
	wg.Wait()

	sim.report()
}

// login registers a throwaway account and keeps its access token.
func (s *Simulator) login() error {
	email := fmt.Sprintf("sim-%d@clinic.local", time.Now().UnixNano())
	password := "simulate123"

	status, _, err := s.request(http.MethodPost, "/auth/register", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("register returned status %d", status)
	}

	status, body, err := s.request(http.MethodPost, "/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("login returned status %d", status)
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return err
	}
	s.token = resp.AccessToken
	return nil
}

func (s *Simulator) loadDoctors() error {
	status, body, err := s.request(http.MethodGet, "/doctors", nil, s.token)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("list doctors returned status %d", status)
	}

	var doctors []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &doctors); err != nil {
		return err
	}
	for _, d := range doctors {
		s.doctors = append(s.doctors, d.ID)
	}
	return nil
}

// runVisit walks one patient through the queue: enqueue as a walk-in,
// assign a random doctor, then complete or remove.
func (s *Simulator) runVisit() {
	entryID, ok := s.enqueue()
	if !ok {
		return
	}

	doctorID := s.doctors[rand.Intn(len(s.doctors))]
	s.assign(entryID, doctorID)

	if rand.Float64() < s.config.RemoveRate {
		s.remove(entryID)
	} else {
		s.complete(entryID)
	}
}

func (s *Simulator) enqueue() (int64, bool) {
	start := time.Now()
	status, body, err := s.request(http.MethodPost, "/queue", map[string]any{
		"patientName": gofakeit.Name(),
		"arrival":     time.Now().Format("03:04 PM"),
		"estWait":     fmt.Sprintf("%d min", rand.Intn(60)+5),
	}, s.token)
	ok := err == nil && status == http.StatusCreated
	s.metrics.Enqueue.Record(time.Since(start), ok)
	if !ok {
		return 0, false
	}

	var entry struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &entry); err != nil {
		return 0, false
	}
	return entry.ID, true
}

func (s *Simulator) assign(entryID, doctorID int64) {
	start := time.Now()
	status, _, err := s.request(http.MethodPatch, fmt.Sprintf("/queue/%d", entryID), map[string]any{
		"status":   "With Doctor",
		"doctorId": doctorID,
	}, s.token)
	s.metrics.Assign.Record(time.Since(start), err == nil && status == http.StatusOK)
}

func (s *Simulator) complete(entryID int64) {
	start := time.Now()
	status, _, err := s.request(http.MethodPatch, fmt.Sprintf("/queue/%d", entryID), map[string]any{
		"status": "Completed",
	}, s.token)
	s.metrics.Complete.Record(time.Since(start), err == nil && status == http.StatusOK)
}

func (s *Simulator) remove(entryID int64) {
	start := time.Now()
	status, _, err := s.request(http.MethodDelete, fmt.Sprintf("/queue/%d", entryID), nil, s.token)
	s.metrics.Remove.Record(time.Since(start), err == nil && status == http.StatusOK)
}

func (s *Simulator) request(method, path string, payload any, token string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.config.APIBaseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

func (s *Simulator) report() {
	print := func(name string, om *OperationMetrics) {
		avg, p50, p95 := om.Stats()
		log.Printf("%-9s total=%d success=%d error=%d avg=%s p50=%s p95=%s",
			name, om.Total, om.Success, om.Error, avg, p50, p95)
	}

	log.Println("simulation finished")
	print("enqueue", &s.metrics.Enqueue)
	print("assign", &s.metrics.Assign)
	print("complete", &s.metrics.Complete)
	print("remove", &s.metrics.Remove)
}
