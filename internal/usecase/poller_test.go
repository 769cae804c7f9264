package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jo3qma.com/pulsara_monitor/internal/domain/model"
)

type countingSnapshotter struct {
	calls int
}

func (c *countingSnapshotter) Snapshot(ctx context.Context, req model.WatchRequest) model.Snapshot {
	c.calls++
	return model.Snapshot{State: model.StateOK, Query: req.Query}
}

func TestClampInterval(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{in: 0, want: DefaultInterval},
		{in: -time.Second, want: DefaultInterval},
		{in: time.Second, want: MinInterval},
		{in: 30 * time.Second, want: 30 * time.Second},
		{in: 5 * time.Minute, want: MaxInterval},
	}

	for _, tc := range cases {
		if got := ClampInterval(tc.in); got != tc.want {
			t.Errorf("ClampInterval(%v) got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPoller_Run_stopsOnEmitError(t *testing.T) {
	t.Parallel()

	s := &countingSnapshotter{}
	p := NewPoller(s, nil)

	stop := errors.New("client gone")
	var got []model.Snapshot
	err := p.Run(context.Background(), model.WatchRequest{Query: "меч"}, func(snap model.Snapshot) error {
		got = append(got, snap)
		return stop
	})

	if !errors.Is(err, stop) {
		t.Fatalf("got error %v, want %v", err, stop)
	}
	if s.calls != 1 || len(got) != 1 {
		t.Fatalf("cycles got %d emitted %d, want 1/1", s.calls, len(got))
	}
	if got[0].Query != "меч" {
		t.Fatalf("Query got %q, want %q", got[0].Query, "меч")
	}
}

func TestPoller_Run_stopsOnCancel(t *testing.T) {
	t.Parallel()

	s := &countingSnapshotter{}
	p := NewPoller(s, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, model.WatchRequest{Query: "меч", Interval: time.Hour}, func(model.Snapshot) error {
			cancel()
			return nil
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got error %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("poll loop did not stop after cancel")
	}
	if s.calls != 1 {
		t.Fatalf("cycles got %d, want 1", s.calls)
	}
}

func TestPoller_Run_alreadyCancelled(t *testing.T) {
	t.Parallel()

	s := &countingSnapshotter{}
	p := NewPoller(s, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx, model.WatchRequest{Query: "меч"}, func(model.Snapshot) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got error %v, want context.Canceled", err)
	}
}

func TestPoller_RunAfter_delaysFirstCycle(t *testing.T) {
	t.Parallel()

	s := &countingSnapshotter{}
	p := NewPoller(s, nil)

	start := time.Now()
	var firstAt time.Time
	stop := errors.New("done")
	err := p.RunAfter(context.Background(), model.WatchRequest{Query: "меч"}, 100*time.Millisecond, func(model.Snapshot) error {
		firstAt = time.Now()
		return stop
	})

	if !errors.Is(err, stop) {
		t.Fatalf("got error %v, want %v", err, stop)
	}
	if d := firstAt.Sub(start); d < 100*time.Millisecond {
		t.Fatalf("first cycle after %v, want >= 100ms", d)
	}
	if s.calls != 1 {
		t.Fatalf("cycles got %d, want 1", s.calls)
	}
}

func TestPoller_RunAfter_cancelDuringDelay(t *testing.T) {
	t.Parallel()

	s := &countingSnapshotter{}
	p := NewPoller(s, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := p.RunAfter(ctx, model.WatchRequest{Query: "меч"}, time.Hour, func(model.Snapshot) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got error %v, want context.DeadlineExceeded", err)
	}
	if s.calls != 0 {
		t.Fatalf("cycles got %d, want 0", s.calls)
	}
}
