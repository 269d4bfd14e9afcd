package player

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPlayRejectsUnknownFormat(t *testing.T) {
	err := New().Play("ogg", io.NopCloser(strings.NewReader("")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPlayReportsDecodeError(t *testing.T) {
	err := New().Play("WAV", io.NopCloser(strings.NewReader("not a wav file")))
	if err == nil || errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
