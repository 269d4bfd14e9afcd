//go:build windows

package hotkey

import (
	"context"
	"fmt"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
)

// Обёртки для функций, которых нет в lxn/win
var (
	user32               = syscall.NewLazyDLL("user32.dll")
	procRegisterHotKey   = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey = user32.NewProc("UnregisterHotKey")
)

const (
	hotkeyID    = 1
	modControl  = 0x0002
	modShift    = 0x0004
	modNoRepeat = 0x4000
	vkX         = 0x58
)

type winListener struct{}

func newPlatformListener() (listener, error) { return &winListener{}, nil }

func (w *winListener) start(ctx context.Context, out chan<- Event) error {
	ready := make(chan error, 1)
	go w.loop(ctx, out, ready)
	return <-ready
}

// loop создаёт окно, регистрирует хоткей, сообщает результат в ready и крутит цикл сообщений.
func (w *winListener) loop(ctx context.Context, out chan<- Event, ready chan<- error) {
	// WinAPI окна живут в закреплённом системном потоке
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	className := syscall.StringToUTF16Ptr("TextTyperHotkeyWindowClass")

	var wc win.WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = syscall.NewCallback(func(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
		switch msg {
		case win.WM_HOTKEY:
			select {
			case out <- Event{Type: EventCancel, At: time.Now()}:
			default:
			}
			return 0
		case win.WM_DESTROY:
			win.PostQuitMessage(0)
			return 0
		}
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	})
	wc.HInstance = win.GetModuleHandle(nil)
	wc.LpszClassName = className
	// повторная регистрация класса вернёт 0 — окно всё равно создастся
	_ = win.RegisterClassEx(&wc)

	hwnd := win.CreateWindowEx(
		0,
		className,
		syscall.StringToUTF16Ptr("TextTyperHotkeyWindow"),
		0,
		0, 0, 0, 0,
		0,
		0,
		wc.HInstance,
		nil,
	)
	if hwnd == 0 {
		ready <- fmt.Errorf("%w: CreateWindowEx: код %d", ErrUnavailable, win.GetLastError())
		return
	}
	defer win.DestroyWindow(hwnd)

	if err := registerHotKey(hwnd, hotkeyID, modControl|modShift|modNoRepeat, vkX); err != nil {
		ready <- fmt.Errorf("%w: Ctrl+Shift+X: %v", ErrUnavailable, err)
		return
	}
	defer unregisterHotKey(hwnd, hotkeyID)
	ready <- nil

	go func() {
		<-ctx.Done()
		win.PostMessage(hwnd, win.WM_CLOSE, 0, 0)
	}()

	msg := new(win.MSG)
	for {
		r := win.GetMessage(msg, 0, 0, 0)
		if r == 0 || r == -1 { // WM_QUIT или ошибка
			return
		}
		win.TranslateMessage(msg)
		win.DispatchMessage(msg)
	}
}

// registerHotKey возвращает ошибку, если комбинация уже занята другим приложением.
func registerHotKey(hwnd win.HWND, id int32, modifiers uint32, vk uint32) error {
	if err := procRegisterHotKey.Find(); err != nil {
		return err
	}
	r, _, callErr := procRegisterHotKey.Call(uintptr(hwnd), uintptr(id), uintptr(modifiers), uintptr(vk))
	if r == 0 {
		return callErr
	}
	return nil
}

func unregisterHotKey(hwnd win.HWND, id int32) bool {
	if procUnregisterHotKey.Find() != nil {
		return false
	}
	r, _, _ := procUnregisterHotKey.Call(uintptr(hwnd), uintptr(id))
	return r != 0
}
