package jobmgr

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStartRejectsDuplicateNames(t *testing.T) {
	m := NewManager(nil)
	release := make(chan struct{})

	err := m.Start(context.Background(), "poll", func(ctx context.Context) error {
		<-release
		return nil
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Start(context.Background(), "poll", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("duplicate name accepted")
	}

	close(release)
	m.StopAll()
}

func TestStopCancelsJobContext(t *testing.T) {
	m := NewManager(nil)
	done := make(chan struct{})

	_ = m.Start(context.Background(), "poll", func(ctx context.Context) error {
		<-ctx.Done()
		close(done)
		return ctx.Err()
	})
	if err := m.Stop("poll"); err != nil {
		t.Fatalf("stop: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("job did not observe cancellation")
	}
	if err := m.Stop("poll"); err == nil {
		t.Fatalf("stopping a stopped job should fail")
	}
}

func TestStopAllWaitsAndRunningList(t *testing.T) {
	m := NewManager(nil)

	for _, name := range []string{"b", "a"} {
		_ = m.Start(context.Background(), name, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
	}

	got := m.Running()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("running = %v", got)
	}

	m.StopAll()
	if got := m.Running(); len(got) != 0 {
		t.Fatalf("jobs still listed after StopAll: %v", got)
	}
}

func TestReporterSeesFailure(t *testing.T) {
	var (
		mu     sync.Mutex
		events []Event
	)
	m := NewManager(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	boom := errors.New("boom")
	_ = m.Start(context.Background(), "poll", func(context.Context) error { return boom })

	deadline := time.After(time.Second)
	for {
		mu.Lock()
		n := len(events)
		mu.Unlock()
		if n >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("reporter events missing")
		case <-time.After(5 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if events[0].State != "started" {
		t.Fatalf("first event = %+v", events[0])
	}
	if events[1].State != "failed" || !errors.Is(events[1].Err, boom) {
		t.Fatalf("second event = %+v", events[1])
	}
}
