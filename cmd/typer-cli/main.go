package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"TextTyper/internal/app/scheduler"
	"TextTyper/internal/app/typer"
	"TextTyper/internal/config"
	"TextTyper/internal/service/input"
	"TextTyper/internal/service/textsource"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := realMain(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// realMain возвращает код выхода; логгер сбрасывается до выхода из процесса.
func realMain(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("typer-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := config.Load(fs, args)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case err != nil:
		fmt.Fprintln(stderr, "Ошибка:", err)
		return 2
	}

	var logger *zap.Logger
	if cfg.DebugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(stderr, "Ошибка:", err)
		return 1
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if err := run(ctx, cfg, sugar, stdin, stdout, stderr); err != nil {
		sugar.Errorw("Typing failed", "error", err)
		fmt.Fprintln(stderr, "Ошибка:", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, stdin io.Reader, stdout, stderr io.Writer) error {
	src := textsource.Source{File: cfg.InputFile, Clipboard: cfg.FromClipboard, Stdin: stdin}
	if src.File == "" && !src.Clipboard {
		src.File = "-"
	}
	text, err := textsource.Load(src)
	if err != nil {
		return err
	}

	// stdout вместо клавиатуры
	var inj scheduler.Injector
	if cfg.Backend == config.BackendStdout {
		inj = input.NewWriter(stdout)
	}
	app, err := typer.New(ctx, cfg, logger, inj)
	if err != nil {
		return err
	}

	hkCtx, hkCancel := context.WithCancel(ctx)
	defer hkCancel()
	go func() {
		if err := app.RunHotkeys(hkCtx); err != nil {
			logger.Warnw("Hotkey service stopped", "error", err)
		}
	}()

	job, err := app.Scheduler.Submit(app.DefaultParams(text))
	if err != nil {
		return err
	}

	done := ctx.Done()
	for {
		select {
		case <-done:
			// дочитываем события до финального
			job.Cancel()
			done = nil
		case ev, ok := <-job.Events():
			if !ok {
				return nil
			}
			if err := report(stderr, ev); err != nil {
				return err
			}
		}
	}
}

// report печатает событие в stderr; stdout остаётся для backend=stdout.
func report(w io.Writer, ev scheduler.Event) error {
	switch ev.Type {
	case scheduler.EventCountdown:
		fmt.Fprintf(w, "Старт через %d с…\n", ev.Remaining)
	case scheduler.EventEmitting:
		fmt.Fprintln(w, "Печать…")
	case scheduler.EventProgress:
		fmt.Fprintf(w, "Печать: %d%% (%d/%d)\n", ev.Percent(), ev.Emitted, ev.Total)
	case scheduler.EventCompleted:
		fmt.Fprintf(w, "Готово: %d символов, ошибок ввода %d\n", ev.Emitted, ev.Failures)
	case scheduler.EventCancelled:
		if ev.Err != nil {
			return ev.Err
		}
		fmt.Fprintf(w, "Отменено: %d/%d\n", ev.Emitted, ev.Total)
	}
	return nil
}
