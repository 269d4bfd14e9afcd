package scheduler

import (
	"sync"
	"time"
)

// fakeClock записывает запрошенные ожидания и возвращается сразу.
type fakeClock struct {
	mu     sync.Mutex
	waits  []time.Duration
	onWait func(n int, d time.Duration)
}

func (c *fakeClock) Wait(d time.Duration, stop <-chan struct{}) bool {
	c.mu.Lock()
	c.waits = append(c.waits, d)
	n := len(c.waits)
	hook := c.onWait
	c.mu.Unlock()
	if hook != nil {
		hook(n, d)
	}
	select {
	case <-stop:
		return false
	default:
		return true
	}
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// gateClock блокирует каждое ожидание до release или отмены задания.
type gateClock struct {
	release chan struct{}
	entered chan struct{}
}

func newGateClock() *gateClock {
	return &gateClock{release: make(chan struct{}), entered: make(chan struct{}, 64)}
}

func (c *gateClock) Wait(_ time.Duration, stop <-chan struct{}) bool {
	c.entered <- struct{}{}
	select {
	case <-stop:
		return false
	case <-c.release:
		return true
	}
}

// fakeInjector записывает введённые символы.
type fakeInjector struct {
	mu      sync.Mutex
	chars   []rune
	texts   []string
	failAt  map[int]error // номер вызова InjectChar (с 1) → ошибка
	textErr error
	onChar  func(n int)
}

func (f *fakeInjector) InjectText(text string) error {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	return f.textErr
}

func (f *fakeInjector) InjectChar(r rune) error {
	f.mu.Lock()
	f.chars = append(f.chars, r)
	n := len(f.chars)
	err := f.failAt[n]
	hook := f.onChar
	f.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return err
}

func (f *fakeInjector) Chars() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.chars)
}

func (f *fakeInjector) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

// collect читает события задания до закрытия канала.
func collect(j *Job) []Event {
	var out []Event
	for ev := range j.Events() {
		out = append(out, ev)
	}
	return out
}

func types(evs []Event) []EventType {
	out := make([]EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}
