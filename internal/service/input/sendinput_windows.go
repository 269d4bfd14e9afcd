//go:build windows

package input

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"github.com/lxn/win"
)

func newNative() (Injector, error) { return newSendInput() }

func newSendInput() (Injector, error) { return &sendInput{}, nil }

func newRobotgo() (Injector, error) {
	return nil, fmt.Errorf("%w: robotgo (используйте sendinput)", ErrUnsupportedBackend)
}

// sendInput вводит символы через SendInput с KEYEVENTF_UNICODE,
// поэтому результат не зависит от текущей раскладки клавиатуры.
type sendInput struct{}

func (s *sendInput) InjectText(text string) error {
	for _, r := range text {
		if err := s.InjectChar(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *sendInput) InjectChar(r rune) error {
	if win.GetForegroundWindow() == 0 {
		return ErrNoFocusTarget
	}
	var inputs []win.KEYBD_INPUT
	switch r {
	case '\r':
		// CRLF: Enter уже придёт на '\n'
		return nil
	case '\n':
		inputs = virtualKey(win.VK_RETURN)
	case '\t':
		inputs = virtualKey(win.VK_TAB)
	default:
		for _, unit := range utf16.Encode([]rune{r}) {
			inputs = append(inputs, unicodeKey(unit, 0), unicodeKey(unit, win.KEYEVENTF_KEYUP))
		}
	}
	n := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0])))
	if int(n) != len(inputs) {
		return fmt.Errorf("SendInput: отправлено %d из %d событий для %q", n, len(inputs), r)
	}
	return nil
}

func unicodeKey(unit uint16, flags uint32) win.KEYBD_INPUT {
	return win.KEYBD_INPUT{
		Type: win.INPUT_KEYBOARD,
		Ki: win.KEYBDINPUT{
			WScan:   unit,
			DwFlags: win.KEYEVENTF_UNICODE | flags,
		},
	}
}

func virtualKey(vk uint16) []win.KEYBD_INPUT {
	return []win.KEYBD_INPUT{
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk}},
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk, DwFlags: win.KEYEVENTF_KEYUP}},
	}
}
