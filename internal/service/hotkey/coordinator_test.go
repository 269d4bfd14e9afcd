package hotkey

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// scriptedListener отправляет заранее заданные нажатия и ждёт отмены.
type scriptedListener struct {
	presses []time.Time
}

func (l scriptedListener) start(ctx context.Context, out chan<- Event) error {
	go func() {
		for _, at := range l.presses {
			select {
			case out <- Event{Type: EventCancel, At: at}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// busyListener не может зарегистрировать комбинацию.
type busyListener struct{ err error }

func (l busyListener) start(context.Context, chan<- Event) error { return l.err }

func TestCoordinatorDebounce(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := scriptedListener{presses: []time.Time{
		base,
		base.Add(100 * time.Millisecond), // дребезг
		base.Add(400 * time.Millisecond),
		base.Add(500 * time.Millisecond), // дребезг
		base.Add(2 * time.Second),
	}}
	c := newCoordinator(Config{Debounce: 300 * time.Millisecond}, func() (listener, error) { return l, nil })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()

	var got []time.Time
	timeout := time.After(5 * time.Second)
	for len(got) < 3 {
		select {
		case ev := <-c.Events():
			got = append(got, ev.At)
		case <-timeout:
			t.Fatalf("received only %d events", len(got))
		}
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: %v", err)
	}
	want := []time.Time{base, base.Add(400 * time.Millisecond), base.Add(2 * time.Second)}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("event %d at %v, want %v", i, got[i], want[i])
		}
	}
	if _, ok := <-c.Events(); ok {
		t.Fatal("events channel must be closed after Run")
	}
}

func TestCoordinatorListenerUnavailable(t *testing.T) {
	c := newCoordinator(Config{}, func() (listener, error) { return nil, ErrUnavailable })
	if err := c.Run(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, ok := <-c.Events(); ok {
		t.Fatal("events channel must be closed")
	}
}

func TestCoordinatorRegistrationFailure(t *testing.T) {
	busy := fmt.Errorf("%w: Ctrl+Shift+X: hot key is already registered", ErrUnavailable)
	c := newCoordinator(Config{}, func() (listener, error) { return busyListener{err: busy}, nil })

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()
	select {
	case err := <-done:
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run must return when registration fails")
	}
	if _, ok := <-c.Events(); ok {
		t.Fatal("events channel must be closed")
	}
}
