package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Допустимые значения строковых настроек
const (
	ProfileFast  = "fast"
	ProfileHuman = "human"

	OnInjectErrorContinue = "continue"
	OnInjectErrorAbort    = "abort"

	BackendAuto      = "auto"
	BackendSendInput = "sendinput"
	BackendRobotgo   = "robotgo"
	BackendStdout    = "stdout"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` //Режим дебага

	// Параметры задания по умолчанию (UI может их менять перед запуском)
	WPM               int  `env:"TYPER_WPM"`         // Скорость печати, слов в минуту (1 слово = 5 символов)
	StartDelaySeconds int  `env:"TYPER_START_DELAY"` // Обратный отсчёт перед печатью, в секундах
	Jitter            bool `env:"TYPER_JITTER"`      // Случайный разброс задержки между символами
	Bulk              bool `env:"TYPER_BULK"`        // Вставить весь текст одной операцией

	// Политика задержек
	Profile       string        `env:"TYPER_PROFILE"`         // fast|human — набор значений по умолчанию
	SpeedFactor   float64       `env:"TYPER_SPEED_FACTOR"`    // Множитель базовой задержки; 0 — из профиля
	MinDelay      time.Duration `env:"TYPER_MIN_DELAY"`       // Нижняя граница задержки; 0 — из профиля
	ProgressEvery int           `env:"TYPER_PROGRESS_EVERY"`  // Как часто слать прогресс, в символах; 0 — из профиля
	SettleDelay   time.Duration `env:"TYPER_SETTLE_DELAY"`    // Пауза после отсчёта; отрицательное — из профиля
	OnInjectError string        `env:"TYPER_ON_INJECT_ERROR"` // continue|abort

	// Ввод
	Backend        string        `env:"TYPER_BACKEND"`         // auto|sendinput|robotgo|stdout
	CancelHotkey   bool          `env:"TYPER_CANCEL_HOTKEY"`   // Глобальный Ctrl+Shift+X для отмены (Windows)
	HotkeyDebounce time.Duration `env:"TYPER_HOTKEY_DEBOUNCE"` // Игнорировать повторные нажатия в этом окне

	// Звуки уведомлений (mp3|wav); пусто — без звука
	SoundStartPath string `env:"TYPER_SOUND_START"`
	SoundDonePath  string `env:"TYPER_SOUND_DONE"`

	HistoryMax int    `env:"TYPER_HISTORY_MAX"` // Сколько завершённых заданий помнить
	LogFile    string `env:"TYPER_LOG_FILE"`    // Куда писать лог в TUI-режиме

	// Источник текста для консольной версии
	InputFile     string `env:"TYPER_INPUT_FILE"`     // Путь к файлу; "-" — stdin
	FromClipboard bool   `env:"TYPER_FROM_CLIPBOARD"` // Взять текст из буфера обмена
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:         false,
		WPM:               3000,
		StartDelaySeconds: 3,
		Jitter:            false,
		Bulk:              false,
		Profile:           ProfileFast,
		SettleDelay:       -1, // из профиля
		OnInjectError:     OnInjectErrorContinue,
		Backend:           BackendAuto,
		CancelHotkey:      true,
		HotkeyDebounce:    300 * time.Millisecond,
		HistoryMax:        10,
		LogFile:           "typer.log",
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	cfg, err := Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load собирает конфигурацию: дефолты → .env → окружение → флаги из args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: разбор окружения: %w", err)
	}

	cfg.registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	cfg.OnInjectError = strings.ToLower(strings.TrimSpace(cfg.OnInjectError))
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага (подробный лог)")
	// Задание
	fs.IntVar(&cfg.WPM, "wpm", cfg.WPM, "скорость печати, слов в минуту")
	fs.IntVar(&cfg.StartDelaySeconds, "start-delay", cfg.StartDelaySeconds, "обратный отсчёт перед печатью, в секундах")
	fs.BoolVar(&cfg.Jitter, "jitter", cfg.Jitter, "добавить человеческий разброс задержек")
	fs.BoolVar(&cfg.Bulk, "bulk", cfg.Bulk, "вставить весь текст одной операцией, без задержек")
	// Политика
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "профиль задержек: fast|human")
	fs.Float64Var(&cfg.SpeedFactor, "speed-factor", cfg.SpeedFactor, "множитель базовой задержки (0 — из профиля; 0.5 — вдвое быстрее)")
	fs.DurationVar(&cfg.MinDelay, "min-delay", cfg.MinDelay, "минимальная задержка между символами (0 — из профиля)")
	fs.IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "слать прогресс каждые N символов (0 — из профиля)")
	fs.DurationVar(&cfg.SettleDelay, "settle-delay", cfg.SettleDelay, "пауза между отсчётом и первым символом (<0 — из профиля)")
	fs.StringVar(&cfg.OnInjectError, "on-inject-error", cfg.OnInjectError, "реакция на ошибку ввода: continue|abort")
	// Ввод
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "способ ввода: auto|sendinput|robotgo|stdout")
	fs.BoolVar(&cfg.CancelHotkey, "cancel-hotkey", cfg.CancelHotkey, "глобальный хоткей Ctrl+Shift+X для отмены (Windows)")
	fs.DurationVar(&cfg.HotkeyDebounce, "hotkey-debounce", cfg.HotkeyDebounce, "окно подавления повторных нажатий хоткея, напр. 300ms")
	// Звуки
	fs.StringVar(&cfg.SoundStartPath, "sound-start", cfg.SoundStartPath, "звук начала печати (mp3 или wav)")
	fs.StringVar(&cfg.SoundDonePath, "sound-done", cfg.SoundDonePath, "звук завершения печати (mp3 или wav)")
	fs.IntVar(&cfg.HistoryMax, "history-max", cfg.HistoryMax, "сколько завершённых заданий показывать")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "файл лога для TUI (пусто — лог отключён)")
	// Источник текста
	fs.StringVar(&cfg.InputFile, "input", cfg.InputFile, "файл с текстом; \"-\" — читать stdin")
	fs.BoolVar(&cfg.FromClipboard, "clipboard", cfg.FromClipboard, "взять текст из буфера обмена")
}

// ValidateTUI проверяет настройки, несовместимые с полноэкранным интерфейсом.
// backend=stdout печатал бы символы поверх экрана TUI.
func (cfg *Config) ValidateTUI() error {
	if cfg.Backend == BackendStdout {
		return fmt.Errorf("config: backend %q недоступен в TUI, используйте консольную версию", BackendStdout)
	}
	return nil
}

// Validate проверяет значения, которые нельзя молча исправить.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.WPM <= 0 {
		errs = append(errs, fmt.Errorf("wpm должен быть > 0, получено %d", cfg.WPM))
	}
	if cfg.StartDelaySeconds < 0 {
		errs = append(errs, fmt.Errorf("start-delay не может быть отрицательным, получено %d", cfg.StartDelaySeconds))
	}
	switch cfg.Profile {
	case ProfileFast, ProfileHuman:
	default:
		errs = append(errs, fmt.Errorf("неизвестный профиль %q (fast|human)", cfg.Profile))
	}
	switch cfg.OnInjectError {
	case OnInjectErrorContinue, OnInjectErrorAbort:
	default:
		errs = append(errs, fmt.Errorf("неизвестная реакция на ошибку ввода %q (continue|abort)", cfg.OnInjectError))
	}
	switch cfg.Backend {
	case BackendAuto, BackendSendInput, BackendRobotgo, BackendStdout:
	default:
		errs = append(errs, fmt.Errorf("неизвестный backend %q", cfg.Backend))
	}
	if cfg.SpeedFactor < 0 {
		errs = append(errs, fmt.Errorf("speed-factor не может быть отрицательным, получено %v", cfg.SpeedFactor))
	}
	if cfg.MinDelay < 0 {
		errs = append(errs, fmt.Errorf("min-delay не может быть отрицательным, получено %s", cfg.MinDelay))
	}
	if cfg.ProgressEvery < 0 {
		errs = append(errs, fmt.Errorf("progress-every не может быть отрицательным, получено %d", cfg.ProgressEvery))
	}
	if cfg.InputFile != "" && cfg.FromClipboard {
		errs = append(errs, errors.New("нельзя одновременно указать -input и -clipboard"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
