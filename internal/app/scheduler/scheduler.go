package scheduler

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"TextTyper/internal/config"

	"go.uber.org/zap"
)

// MaxStartDelay — верхняя граница обратного отсчёта, секунды.
const MaxStartDelay = 3600

// Injector — внешний механизм ввода: вставка всего текста и одного символа.
type Injector interface {
	InjectText(text string) error
	InjectChar(r rune) error
}

// Option настраивает Scheduler.
type Option func(*Scheduler)

// WithPolicy задаёт политику задержек.
func WithPolicy(p Policy) Option { return func(s *Scheduler) { s.policy = p } }

// WithClock подменяет источник ожиданий (в тестах — без реального сна).
func WithClock(c Clock) Option { return func(s *Scheduler) { s.clock = c } }

// WithRandom подменяет источник случайных чисел из [0, 1).
func WithRandom(f func() float64) Option { return func(s *Scheduler) { s.random = f } }

// WithObserver добавляет синхронного наблюдателя событий всех заданий.
// Наблюдатель вызывается в горутине задания и не должен блокировать.
func WithObserver(f func(Event)) Option {
	return func(s *Scheduler) { s.observers = append(s.observers, f) }
}

// Scheduler запускает задания печати по одному: отсчёт, затем посимвольный ввод.
type Scheduler struct {
	inj       Injector
	logger    *zap.SugaredLogger
	policy    Policy
	clock     Clock
	random    func() float64
	observers []func(Event)

	active atomic.Pointer[Job]
	wg     sync.WaitGroup
}

func New(inj Injector, logger *zap.SugaredLogger, opts ...Option) (*Scheduler, error) {
	if inj == nil {
		return nil, fmt.Errorf("scheduler: injector is nil")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Scheduler{
		inj:    inj,
		logger: logger,
		policy: PolicyFast(),
		clock:  realClock{},
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.policy.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromConfig собирает планировщик с политикой из конфигурации.
func NewFromConfig(cfg *config.Config, inj Injector, logger *zap.SugaredLogger, opts ...Option) (*Scheduler, error) {
	p, err := PolicyFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	s, err := New(inj, logger, append([]Option{WithPolicy(p)}, opts...)...)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("Scheduler configured",
		"profile", cfg.Profile,
		"jitter", fmt.Sprintf("[%.2f, %.2f]", p.MinMultiplier, p.MaxMultiplier),
		"pause", p.PauseMultiplier,
		"minDelay", p.MinDelay.String(),
		"speedFactor", p.SpeedFactor,
		"settle", p.SettleDelay.String(),
		"onInjectError", p.OnInjectError.String(),
	)
	return s, nil
}

// PolicyFromConfig берёт профиль и перекрывает заданные в конфиге поля.
func PolicyFromConfig(cfg *config.Config) (Policy, error) {
	p, err := PolicyByName(cfg.Profile)
	if err != nil {
		return Policy{}, err
	}
	if cfg.SpeedFactor > 0 {
		p.SpeedFactor = cfg.SpeedFactor
	}
	if cfg.MinDelay > 0 {
		p.MinDelay = cfg.MinDelay
	}
	if cfg.ProgressEvery > 0 {
		p.ProgressEvery = cfg.ProgressEvery
	}
	if cfg.SettleDelay >= 0 {
		p.SettleDelay = cfg.SettleDelay
	}
	if cfg.OnInjectError == config.OnInjectErrorAbort {
		p.OnInjectError = AbortOnError
	}
	return p, p.Validate()
}

// Policy возвращает действующую политику задержек.
func (s *Scheduler) Policy() Policy { return s.policy }

// Submit создаёт задание и запускает его в фоне.
// Пока предыдущее задание не завершено, новое отклоняется с ErrJobInProgress.
func (s *Scheduler) Submit(p Params) (*Job, error) {
	if strings.TrimSpace(p.Text) == "" {
		return nil, ErrEmptyInput
	}
	if math.IsNaN(p.Rate) || p.Rate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, p.Rate)
	}
	if p.StartDelay < 0 || p.StartDelay > MaxStartDelay {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStartDelay, p.StartDelay)
	}

	j := newJob(p, s.policy.ProgressEvery)
	if !s.active.CompareAndSwap(nil, j) {
		return nil, ErrJobInProgress
	}

	s.logger.Infow("Typing job submitted",
		"jobID", j.id,
		"chars", j.Total(),
		"rate", p.Rate,
		"jitter", p.Jitter,
		"bulk", p.Bulk,
		"startDelay", p.StartDelay,
	)

	s.wg.Add(1)
	go s.run(j)
	return j, nil
}

// Cancel запрашивает отмену задания.
func (s *Scheduler) Cancel(j *Job) {
	if j == nil {
		return
	}
	j.Cancel()
}

// Active возвращает текущее задание или nil.
func (s *Scheduler) Active() *Job { return s.active.Load() }

// CancelActive отменяет текущее задание; false — отменять нечего.
func (s *Scheduler) CancelActive() bool {
	j := s.active.Load()
	if j == nil {
		return false
	}
	j.Cancel()
	return true
}

// Wait дожидается завершения всех запущенных заданий.
func (s *Scheduler) Wait() { s.wg.Wait() }

func (s *Scheduler) run(j *Job) {
	defer s.wg.Done()
	defer close(j.done)

	start := time.Now()
	j.transition(StatePending, StateCountingDown)

	// Обратный отсчёт: событие, затем секунда ожидания. Флаг проверяется перед каждым ожиданием.
	for remaining := j.params.StartDelay; remaining > 0; remaining-- {
		if j.CancelRequested() {
			s.finish(j, StateCancelled, 0, nil, start)
			return
		}
		s.emit(j, Event{Type: EventCountdown, Remaining: remaining})
		s.clock.Wait(time.Second, j.stop)
	}
	if j.CancelRequested() {
		s.finish(j, StateCancelled, 0, nil, start)
		return
	}

	// Даём фокусу устояться в целевом окне
	if s.policy.SettleDelay > 0 {
		s.clock.Wait(s.policy.SettleDelay, j.stop)
		if j.CancelRequested() {
			s.finish(j, StateCancelled, 0, nil, start)
			return
		}
	}

	j.transition(StateCountingDown, StateEmitting)
	s.emit(j, Event{Type: EventEmitting})

	if j.params.Bulk {
		s.emitBulk(j, start)
		return
	}
	s.emitChars(j, start)
}

func (s *Scheduler) emitBulk(j *Job, start time.Time) {
	if j.CancelRequested() {
		s.finish(j, StateCancelled, 0, nil, start)
		return
	}
	failures := 0
	err := s.inj.InjectText(j.params.Text)
	j.emitted.Store(int64(j.Total()))
	if err != nil {
		failures++
		if s.policy.OnInjectError == AbortOnError {
			s.finish(j, StateCancelled, failures, fmt.Errorf("%w: %w", ErrInjectionFailed, err), start)
			return
		}
		s.logger.Warnw("Bulk injection failed", "jobID", j.id, "error", err)
	}
	s.emit(j, Event{Type: EventProgress})
	s.finish(j, StateCompleted, failures, nil, start)
}

func (s *Scheduler) emitChars(j *Job, start time.Time) {
	total := j.Total()
	every := s.policy.ProgressEvery
	failures := 0

	for i, r := range j.text {
		if j.CancelRequested() {
			s.finish(j, StateCancelled, failures, nil, start)
			return
		}

		err := s.inj.InjectChar(r)
		n := i + 1
		j.emitted.Store(int64(n))
		if err != nil {
			failures++
			if s.policy.OnInjectError == AbortOnError {
				s.finish(j, StateCancelled, failures, fmt.Errorf("%w: позиция %d: %w", ErrInjectionFailed, i, err), start)
				return
			}
			s.logger.Warnw("Char injection failed", "jobID", j.id, "pos", i, "error", err)
		}

		if n%every == 0 || n == total {
			s.emit(j, Event{Type: EventProgress})
		}

		s.clock.Wait(s.policy.Delay(r, j.params.Rate, j.params.Jitter, s.random), j.stop)
	}
	s.finish(j, StateCompleted, failures, nil, start)
}

// finish фиксирует итоговое состояние, освобождает слот и отправляет финальное событие.
// Слот освобождается до отправки, чтобы наблюдатель мог сразу запустить новое задание.
func (s *Scheduler) finish(j *Job, st State, failures int, cause error, start time.Time) {
	j.state.Store(int32(st))
	s.active.CompareAndSwap(j, nil)

	ev := Event{Type: EventCompleted, Failures: failures, Err: cause}
	if st == StateCancelled {
		ev.Type = EventCancelled
	}

	fields := []any{"jobID", j.id, "emitted", j.Emitted(), "total", j.Total(), "failures", failures, "duration", time.Since(start).String()}
	switch {
	case cause != nil:
		s.logger.Errorw("Typing job aborted", append(fields, "error", cause)...)
	case st == StateCancelled:
		s.logger.Infow("Typing job cancelled", fields...)
	default:
		s.logger.Infow("Typing job completed", fields...)
	}

	s.emit(j, ev)
	close(j.events)
}

func (s *Scheduler) emit(j *Job, ev Event) {
	ev.JobID = j.id
	ev.Total = j.Total()
	if ev.Type != EventCountdown {
		ev.Emitted = j.Emitted()
	}
	ev.At = time.Now()

	for _, obs := range s.observers {
		obs(ev)
	}

	select {
	case j.events <- ev:
	default:
		// не должно случаться: буфер рассчитан в newJob
		s.logger.Errorw("Event buffer overflow", "jobID", j.id, "event", ev.Type.String())
	}
}
