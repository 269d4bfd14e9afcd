package hotkey

import (
	"context"
	"time"
)

// listener — платформенный источник «сырых» нажатий.
// start возвращает управление, когда хоткей зарегистрирован, или ошибку регистрации;
// дальше нажатия идут в out до отмены ctx.
type listener interface {
	start(ctx context.Context, out chan<- Event) error
}

type coordinator struct {
	cfg         Config
	newListener func() (listener, error)

	// входящие от платформенного слушателя
	in chan Event
	// исходящие для потребителей
	out chan Event

	lastSent time.Time
}

func newCoordinator(cfg Config, factory func() (listener, error)) *coordinator {
	return &coordinator{
		cfg:         cfg,
		newListener: factory,
		in:          make(chan Event, 16),
		out:         make(chan Event, 16),
	}
}

func (c *coordinator) Events() <-chan Event { return c.out }

func (c *coordinator) Run(ctx context.Context) error {
	if c.cfg.Debounce < 0 {
		c.cfg.Debounce = 0
	}

	l, err := c.newListener()
	if err != nil {
		close(c.out)
		return err
	}
	if err := l.start(ctx, c.in); err != nil {
		close(c.out)
		return err
	}

	defer close(c.out)
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case ev := <-c.in:
			// дребезг: повторное нажатие в пределах окна не считается новым
			if !c.lastSent.IsZero() && ev.At.Sub(c.lastSent) < c.cfg.Debounce {
				continue
			}
			c.lastSent = ev.At
			c.safeSend(ev)
		}
	}
}

func (c *coordinator) safeSend(ev Event) {
	select {
	case c.out <- ev:
	default:
		// потребитель не успевает — повторная отмена всё равно ничего не добавит
	}
}
