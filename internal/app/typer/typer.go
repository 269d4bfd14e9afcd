// Package typer собирает планировщик печати и вспомогательные сервисы из конфигурации.
package typer

import (
	"context"
	"errors"

	"TextTyper/internal/app/scheduler"
	"TextTyper/internal/config"
	"TextTyper/internal/service/history"
	"TextTyper/internal/service/hotkey"
	"TextTyper/internal/service/input"
	"TextTyper/internal/service/notify"

	"go.uber.org/zap"
)

// App — планировщик и всё, что наблюдает за его событиями.
type App struct {
	cfg       *config.Config
	logger    *zap.SugaredLogger
	Scheduler *scheduler.Scheduler
	History   *history.History
	Notifier  *notify.SoundNotifier

	// newHotkeys подменяется в тестах
	newHotkeys func(hotkey.Config) hotkey.Service
}

// New собирает приложение. inj == nil — способ ввода берётся из cfg.Backend.
// ctx ограничивает фоновые звуки уведомлений.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, inj scheduler.Injector) (*App, error) {
	if inj == nil {
		native, err := input.New(cfg.Backend, logger)
		if err != nil {
			return nil, err
		}
		inj = native
	}

	a := &App{
		cfg:        cfg,
		logger:     logger,
		History:    history.New(cfg.HistoryMax),
		Notifier:   notify.NewSoundNotifier(logger, nil, cfg.SoundStartPath, cfg.SoundDonePath),
		newHotkeys: hotkey.New,
	}

	s, err := scheduler.NewFromConfig(cfg, inj, logger, scheduler.WithObserver(a.observer(ctx)))
	if err != nil {
		return nil, err
	}
	a.Scheduler = s
	return a, nil
}

// observer пишет итоги в историю и запускает звуки; звук не задерживает печать.
func (a *App) observer(ctx context.Context) func(scheduler.Event) {
	sounds := a.Notifier.Enabled()
	return func(ev scheduler.Event) {
		switch ev.Type {
		case scheduler.EventEmitting:
			if sounds {
				go func() { _ = a.Notifier.PlayStart(ctx) }()
			}
		case scheduler.EventCompleted, scheduler.EventCancelled:
			a.History.Add(history.Entry{
				JobID:      ev.JobID,
				Outcome:    ev.Type.String(),
				Emitted:    ev.Emitted,
				Total:      ev.Total,
				Err:        ev.Err,
				FinishedAt: ev.At,
			})
			if sounds && ev.Type == scheduler.EventCompleted {
				go func() { _ = a.Notifier.PlayDone(ctx) }()
			}
		}
	}
}

// Params собирает параметры задания из значений, выбранных пользователем.
func (a *App) Params(text string, wpm, startDelay int, jitter, bulk bool) scheduler.Params {
	return scheduler.Params{
		Text:       text,
		Rate:       scheduler.RateFromWPM(float64(wpm)),
		Jitter:     jitter,
		Bulk:       bulk,
		StartDelay: startDelay,
	}
}

// DefaultParams — параметры задания из конфигурации.
func (a *App) DefaultParams(text string) scheduler.Params {
	return a.Params(text, a.cfg.WPM, a.cfg.StartDelaySeconds, a.cfg.Jitter, a.cfg.Bulk)
}

// RunHotkeys слушает глобальный хоткей отмены до отмены ctx.
// Если хоткей выключен, недоступен на платформе или занят другим приложением,
// возвращает nil; недоступность пишется в лог.
func (a *App) RunHotkeys(ctx context.Context) error {
	if !a.cfg.CancelHotkey {
		return nil
	}
	svc := a.newHotkeys(hotkey.Config{Debounce: a.cfg.HotkeyDebounce})

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Run(ctx) }()

	for ev := range svc.Events() {
		if ev.Type != hotkey.EventCancel {
			continue
		}
		if a.Scheduler.CancelActive() {
			a.logger.Infow("Cancel hotkey pressed", "at", ev.At.Format("15:04:05.000"))
		}
	}

	err := <-errCh
	switch {
	case errors.Is(err, hotkey.ErrUnavailable):
		a.logger.Warnw("Cancel hotkey unavailable", "error", err)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil
	}
	return err
}
