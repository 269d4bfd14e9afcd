package scheduler

import "time"

// EventType описывает типы событий задания.
type EventType int

const (
	// EventCountdown — раз в секунду во время отсчёта, Remaining — оставшиеся секунды.
	EventCountdown EventType = iota + 1
	// EventEmitting — отсчёт закончен, начинается ввод.
	EventEmitting
	// EventProgress — периодический прогресс (Emitted, Total).
	EventProgress
	// EventCompleted — все символы отправлены, отмена не наблюдалась.
	EventCompleted
	// EventCancelled — задание остановлено отменой или ошибкой ввода (Err).
	EventCancelled
)

func (t EventType) String() string {
	switch t {
	case EventCountdown:
		return "countdown"
	case EventEmitting:
		return "emitting"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event — событие задания печати.
type Event struct {
	Type      EventType
	JobID     string
	Remaining int // секунды до старта, только для EventCountdown
	Emitted   int
	Total     int
	Failures  int   // число неудачных вводов (политика continue)
	Err       error // причина прерывания при политике abort
	At        time.Time
}

// Terminal сообщает, что событие последнее для задания.
func (e Event) Terminal() bool {
	return e.Type == EventCompleted || e.Type == EventCancelled
}

// Percent — floor(Emitted / Total * 100). Total > 0 гарантирован проверкой в Submit.
func (e Event) Percent() int {
	if e.Total <= 0 {
		return 0
	}
	return e.Emitted * 100 / e.Total
}
