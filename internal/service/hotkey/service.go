package hotkey

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable — глобальные хоткеи не поддерживаются на этой платформе.
var ErrUnavailable = errors.New("hotkey: глобальные хоткеи недоступны на этой платформе")

// EventType описывает типы событий сервиса.
type EventType int

const (
	// EventCancel — нажата комбинация отмены (Ctrl+Shift+X).
	EventCancel EventType = iota + 1
)

// Event событие глобального хоткея.
type Event struct {
	Type EventType
	At   time.Time
}

// Service минимальный интерфейс сервиса хоткеев.
type Service interface {
	Run(ctx context.Context) error
	Events() <-chan Event
}

// Config параметры сервиса.
type Config struct {
	// Нажатия ближе Debounce к предыдущему переданному игнорируются
	Debounce time.Duration
}

// New создает сервис с координатором и платформенным слушателем.
func New(cfg Config) Service {
	return newCoordinator(cfg, newPlatformListener)
}
