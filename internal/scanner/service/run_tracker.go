package service

import (
	"sync"
	"time"

	"golang-stock-scanner/internal/entity"

	"github.com/google/uuid"
)

const subscriberBuffer = 64

// RunTracker holds the latest run snapshot and fans progress out to subscribers.
// At most one run is active at a time.
type RunTracker struct {
	mu          sync.RWMutex
	latest      *entity.ScanRun
	subscribers map[int]chan entity.Progress
	nextID      int
}

// NewRunTracker creates an idle tracker.
func NewRunTracker() *RunTracker {
	return &RunTracker{subscribers: make(map[int]chan entity.Progress)}
}

// Start registers a new running run, or returns ErrRunInProgress.
func (t *RunTracker) Start(profile string) (*entity.ScanRun, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.latest != nil && t.latest.Status == entity.RunStatusRunning {
		return nil, entity.ErrRunInProgress
	}

	run := &entity.ScanRun{
		ID:        uuid.NewString(),
		Profile:   profile,
		Status:    entity.RunStatusRunning,
		StartedAt: time.Now(),
	}
	t.latest = run
	snapshot := *run
	return &snapshot, nil
}

// Update applies a progress event to the running snapshot and broadcasts it.
func (t *RunTracker) Update(p entity.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.latest != nil && t.latest.ID == p.RunID && t.latest.Status == entity.RunStatusRunning {
		t.latest.Total = p.Total
		t.latest.Processed = p.Processed
		switch p.Status {
		case entity.OutcomeQualified:
			t.latest.Qualified++
		case entity.OutcomeSkipped:
			t.latest.Skipped++
		case entity.OutcomeFailed:
			t.latest.Failed++
		}
	}
	t.broadcast(p)
}

// Finish replaces the running snapshot with the final run.
// A nil run with an error marks the running snapshot failed.
func (t *RunTracker) Finish(run *entity.ScanRun, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if run == nil {
		if t.latest == nil {
			return
		}
		failed := *t.latest
		now := time.Now()
		failed.Status = entity.RunStatusFailed
		failed.CompletedAt = &now
		if err != nil {
			failed.Error = err.Error()
		}
		run = &failed
	}
	t.latest = run

	t.broadcast(entity.Progress{
		RunID:     run.ID,
		Processed: run.Processed,
		Total:     run.Total,
		Fraction:  run.Fraction(),
		Done:      true,
	})
}

// Latest returns a copy of the most recent run, or nil before the first run.
func (t *RunTracker) Latest() *entity.ScanRun {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.latest == nil {
		return nil
	}
	snapshot := *t.latest
	return &snapshot
}

// Subscribe returns a channel of progress events and a function to unsubscribe.
// Slow subscribers miss events rather than block the run.
func (t *RunTracker) Subscribe() (<-chan entity.Progress, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	ch := make(chan entity.Progress, subscriberBuffer)
	t.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.subscribers, id)
			close(ch)
		})
	}
}

func (t *RunTracker) broadcast(p entity.Progress) {
	for _, ch := range t.subscribers {
		select {
		case ch <- p:
		default:
		}
	}
}
