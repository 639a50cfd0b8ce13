// Package jobmgr tracks named background loops with cancellation. It keeps
// no retry or scheduling logic of its own; a job is a function that runs
// until its context is cancelled.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Event is a job lifecycle notification.
type Event struct {
	Job   string
	State string // "started", "finished", "failed"
	Err   error
}

// Reporter receives lifecycle events. May be nil.
type Reporter func(Event)

// Manager starts, stops and tracks named jobs. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]context.CancelFunc
	wg       sync.WaitGroup
	reporter Reporter
}

// NewManager creates a Manager with an optional event reporter.
func NewManager(reporter Reporter) *Manager {
	return &Manager{
		jobs:     make(map[string]context.CancelFunc),
		reporter: reporter,
	}
}

// Start launches a job in its own goroutine. The job's context is derived
// from parent, so cancelling the parent stops every job. Starting a name
// that is already running is an error.
func (m *Manager) Start(parent context.Context, name string, run func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job %q is already running", name)
	}
	ctx, cancel := context.WithCancel(parent)
	m.jobs[name] = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		m.report(Event{Job: name, State: "started"})

		err := run(ctx)

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()

		if err != nil && ctx.Err() == nil {
			m.report(Event{Job: name, State: "failed", Err: err})
			return
		}
		m.report(Event{Job: name, State: "finished"})
	}()
	return nil
}

// Stop cancels one job by name. Stopping a job that is not running is an
// error.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cancel, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job %q is not running", name)
	}
	cancel()
	delete(m.jobs, name)
	return nil
}

// StopAll cancels every job and waits for them to return.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for name, cancel := range m.jobs {
		cancel()
		delete(m.jobs, name)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// Running returns the sorted names of active jobs.
func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) report(ev Event) {
	if m.reporter != nil {
		m.reporter(ev)
	}
}
