//go:build !windows

package hotkey

func newPlatformListener() (listener, error) {
	return nil, ErrUnavailable
}
