// Package sched runs the recap pipeline on a cron schedule.
package sched

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"
)

// RunFunc executes one scheduled recap and reports a short result line.
type RunFunc func(ctx context.Context) (string, error)

// Service triggers a RunFunc on a cron expression. Overlapping executions
// are skipped: a new tick while a run is still in flight is dropped.
type Service struct {
	expr  string
	onRun RunFunc

	mu      sync.Mutex
	running bool
	cron    *rcron.Cron
	lastRun time.Time
	lastErr error
}

func NewService(expr string, onRun RunFunc) *Service {
	return &Service{expr: expr, onRun: onRun}
}

func (s *Service) Start(ctx context.Context) error {
	s.cron = rcron.New()
	_, err := s.cron.AddFunc(s.expr, func() { s.execute(ctx) })
	if err != nil {
		return fmt.Errorf("register schedule %q: %w", s.expr, err)
	}

	s.cron.Start()
	log.Printf("[sched] started with schedule %q", s.expr)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		log.Printf("[sched] stopped")
	}
}

func (s *Service) execute(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Printf("[sched] previous run still in flight, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	result, err := s.onRun(ctx)

	s.mu.Lock()
	s.running = false
	s.lastRun = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		log.Printf("[sched] run error: %v", err)
		return
	}
	log.Printf("[sched] run complete: %s", result)
}

// LastRun reports the most recent execution time and its error, if any.
func (s *Service) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}
