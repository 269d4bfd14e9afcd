package scheduler

import "time"

// Clock абстрагирует ожидание между шагами, чтобы тесты не спали по-настоящему.
type Clock interface {
	// Wait ждёт d или закрытия stop. Возвращает false, если ожидание прервано.
	// Закрытие stop (Job.Cancel) прерывает ожидание досрочно.
	Wait(d time.Duration, stop <-chan struct{}) bool
}

type realClock struct{}

func (realClock) Wait(d time.Duration, stop <-chan struct{}) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-stop:
		return false
	case <-t.C:
		return true
	}
}
