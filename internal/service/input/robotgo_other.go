//go:build !windows

package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

func newNative() (Injector, error) { return newRobotgo() }

func newRobotgo() (Injector, error) { return &robotgoInjector{}, nil }

func newSendInput() (Injector, error) {
	return nil, fmt.Errorf("%w: sendinput есть только в Windows", ErrUnsupportedBackend)
}

// robotgoInjector печатает через robotgo: управляющие символы — нажатием клавиш, остальное — TypeStr.
type robotgoInjector struct{}

func (r *robotgoInjector) InjectText(text string) error {
	for _, ch := range text {
		if err := r.InjectChar(ch); err != nil {
			return err
		}
	}
	return nil
}

func (r *robotgoInjector) InjectChar(ch rune) error {
	switch ch {
	case '\r':
		return nil
	case '\n':
		return robotgo.KeyTap("enter")
	case '\t':
		return robotgo.KeyTap("tab")
	default:
		robotgo.TypeStr(string(ch))
		return nil
	}
}
