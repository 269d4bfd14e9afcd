package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// State — этап жизненного цикла задания. Переходы только вперёд:
// Pending → CountingDown → Emitting → {Completed | Cancelled}.
type State int32

const (
	StatePending State = iota
	StateCountingDown
	StateEmitting
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCountingDown:
		return "counting_down"
	case StateEmitting:
		return "emitting"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal сообщает, что задание завершено.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Params — параметры задания, фиксируются в момент Submit.
type Params struct {
	Text       string
	Rate       float64 // символов в секунду, см. RateFromWPM
	Jitter     bool
	Bulk       bool
	StartDelay int // секунды обратного отсчёта
}

// Job — одно задание печати. Снаружи доступны только чтение состояния, поток событий и отмена.
type Job struct {
	id        string
	text      []rune
	params    Params
	createdAt time.Time

	state     atomic.Int32
	cancelReq atomic.Bool
	emitted   atomic.Int64

	stopOnce sync.Once
	stop     chan struct{}
	events   chan Event
	done     chan struct{}
}

func newJob(p Params, progressEvery int) *Job {
	text := []rune(p.Text)
	// Буфер рассчитан на худший случай: отсчёт, старт печати, весь прогресс и финал.
	// Отправка событий поэтому никогда не блокирует фоновую горутину.
	size := p.StartDelay + len(text)/max(1, progressEvery) + 4
	return &Job{
		id:        uuid.NewString(),
		text:      text,
		params:    p,
		createdAt: time.Now(),
		stop:      make(chan struct{}),
		events:    make(chan Event, size),
		done:      make(chan struct{}),
	}
}

func (j *Job) ID() string { return j.id }

func (j *Job) Params() Params { return j.params }

func (j *Job) State() State { return State(j.state.Load()) }

// Total — количество символов в задании.
func (j *Job) Total() int { return len(j.text) }

// Emitted — сколько символов уже передано на ввод.
func (j *Job) Emitted() int { return int(j.emitted.Load()) }

// Events возвращает упорядоченный поток событий. Канал закрывается после финального события.
func (j *Job) Events() <-chan Event { return j.events }

// Done закрывается, когда фоновая горутина задания завершилась.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait блокирует до завершения задания и возвращает итоговое состояние.
func (j *Job) Wait() State {
	<-j.done
	return j.State()
}

// Cancel запрашивает кооперативную отмену. Повторные вызовы и вызов
// после завершения ничего не делают. Уже отправленные символы не откатываются.
//
// Отмена учитывается и в состоянии Pending: задание сразу перейдёт в Cancelled,
// не отправив ни одного события отсчёта. Текущее ожидание (секунда отсчёта,
// пауза перед стартом или задержка после символа) прерывается, а не досыпается;
// флаг всё равно проверяется перед каждым следующим символом.
func (j *Job) Cancel() {
	if j.State().Terminal() {
		return
	}
	j.cancelReq.Store(true)
	j.stopOnce.Do(func() { close(j.stop) })
}

// CancelRequested сообщает, была ли запрошена отмена.
func (j *Job) CancelRequested() bool { return j.cancelReq.Load() }

func (j *Job) transition(from, to State) bool {
	return j.state.CompareAndSwap(int32(from), int32(to))
}
