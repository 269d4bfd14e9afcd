package history

import (
	"sync"
	"time"
)

// Entry — итог одного задания печати.
type Entry struct {
	JobID      string
	Outcome    string // completed|cancelled
	Emitted    int
	Total      int
	Err        error
	FinishedAt time.Time
}

// History — потокобезопасный буфер фиксированной ёмкости с итогами последних заданий.
type History struct {
	cap     int
	entries []Entry
	mu      sync.Mutex
}

func New(capacity int) *History {
	if capacity <= 0 {
		capacity = 10
	}
	return &History{cap: capacity, entries: make([]Entry, 0, capacity)}
}

// Add добавляет запись, при переполнении удаляет самую старую.
func (h *History) Add(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.cap {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.cap-1]
	}
	h.entries = append(h.entries, e)
}

// Recent возвращает копию записей, новые в конце.
func (h *History) Recent() []Entry {
	h.mu.Lock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	h.mu.Unlock()
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	l := len(h.entries)
	h.mu.Unlock()
	return l
}
