package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"TextTyper/internal/app/typer"
	"TextTyper/internal/config"
	"TextTyper/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	os.Exit(realMain())
}

// realMain возвращает код выхода; отложенные вызовы (Sync логгера) успевают выполниться.
func realMain() int {
	cfg := config.NewConfig()
	if err := cfg.ValidateTUI(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		return 2
	}

	// В TUI лог пишется в файл, иначе он ломает экран
	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"Backend", cfg.Backend,
		"Profile", cfg.Profile,
	)

	app, err := typer.New(ctx, cfg, sugar, nil)
	if err != nil {
		sugar.Errorw("Failed to init typer", "error", err)
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		return 1
	}

	go func() {
		if err := app.RunHotkeys(ctx); err != nil {
			sugar.Warnw("Hotkey service stopped", "error", err)
		}
	}()

	model := ui.New(app.Scheduler, app.History, ui.Settings{
		WPM:        cfg.WPM,
		StartDelay: cfg.StartDelaySeconds,
		Jitter:     cfg.Jitter,
		Bulk:       cfg.Bulk,
	})

	code := 0
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		sugar.Errorw("TUI failed", "error", err)
		code = 1
	}

	app.Scheduler.CancelActive()
	app.Scheduler.Wait()
	sugar.Infow("App stopped")
	return code
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	if cfg.DebugMode {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	return zc.Build()
}
