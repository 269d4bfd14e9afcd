// Package input вводит текст в окно, которое сейчас в фокусе.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNoFocusTarget — нет окна в фокусе, вводить некуда.
	ErrNoFocusTarget = errors.New("нет активного окна для ввода")

	// ErrUnsupportedBackend — способ ввода недоступен на этой платформе.
	ErrUnsupportedBackend = errors.New("способ ввода недоступен на этой платформе")
)

// Injector — механизм ввода: весь текст сразу или один символ.
type Injector interface {
	InjectText(text string) error
	InjectChar(r rune) error
}

// New создаёт Injector по имени backend: auto|sendinput|robotgo|stdout.
func New(backend string, logger *zap.SugaredLogger) (Injector, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	name := strings.ToLower(strings.TrimSpace(backend))
	var (
		inj Injector
		err error
	)
	switch name {
	case "", "auto":
		inj, err = newNative()
	case "sendinput":
		inj, err = newSendInput()
	case "robotgo":
		inj, err = newRobotgo()
	case "stdout":
		inj = NewWriter(os.Stdout)
	default:
		return nil, fmt.Errorf("input: неизвестный backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("input: %s: %w", name, err)
	}
	logger.Infow("Input backend selected", "backend", name, "impl", fmt.Sprintf("%T", inj))
	return inj, nil
}

// Writer — «сухой» ввод: символы пишутся в io.Writer вместо клавиатуры.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) InjectText(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.w, text)
	return err
}

func (w *Writer) InjectChar(r rune) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.w, string(r))
	return err
}
