// Package textsource получает текст для печати: из файла, stdin или буфера обмена.
package textsource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable — буфер обмена недоступен (нет xclip/xsel, нет сессии и т.п.).
var ErrClipboardUnavailable = errors.New("буфер обмена недоступен")

// Source описывает, откуда брать текст.
type Source struct {
	File      string // путь к файлу; "-" — stdin
	Clipboard bool
	Stdin     io.Reader // по умолчанию os.Stdin
}

// clipboardRead подменяется в тестах.
var clipboardRead = clipboard.ReadAll

// Load читает текст из выбранного источника и убирает хвостовой перевод строки захвата.
func Load(src Source) (string, error) {
	switch {
	case src.Clipboard:
		return FromClipboard()
	case src.File == "" || src.File == "-":
		r := src.Stdin
		if r == nil {
			r = os.Stdin
		}
		return FromReader(r)
	default:
		return FromFile(src.File)
	}
}

func FromFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("textsource: %w", err)
	}
	return TrimCaptureNewline(string(b)), nil
}

func FromReader(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("textsource: %w", err)
	}
	return TrimCaptureNewline(string(b)), nil
}

// FromClipboard берёт только текст; нетекстовое содержимое буфера даёт пустую строку.
func FromClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	s, err := clipboardRead()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return TrimCaptureNewline(s), nil
}

// TrimCaptureNewline убирает ровно один завершающий перевод строки ("\n" или "\r\n").
// Остальные пробелы и переводы строк — часть текста и печатаются как есть.
func TrimCaptureNewline(s string) string {
	if t, ok := strings.CutSuffix(s, "\r\n"); ok {
		return t
	}
	return strings.TrimSuffix(s, "\n")
}
