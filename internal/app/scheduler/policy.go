package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// InjectErrorPolicy определяет реакцию на ошибку ввода символа.
type InjectErrorPolicy int

const (
	// ContinueOnError — ошибка логируется, печать продолжается.
	ContinueOnError InjectErrorPolicy = iota
	// AbortOnError — задание завершается как Cancelled с ErrInjectionFailed.
	AbortOnError
)

func (p InjectErrorPolicy) String() string {
	switch p {
	case AbortOnError:
		return "abort"
	default:
		return "continue"
	}
}

// Слов в минуту → символов в секунду: одно слово считается за 5 символов.
const charsPerWord = 5

// RateFromWPM переводит слова в минуту в символы в секунду.
func RateFromWPM(wpm float64) float64 {
	return wpm * charsPerWord / 60
}

// Policy — параметры расчёта задержки между символами.
// Значения фиксируются при создании планировщика и не меняются во время печати.
type Policy struct {
	// Диапазон множителя разброса, равномерное распределение
	MinMultiplier float64
	MaxMultiplier float64
	// Дополнительный множитель для символов-пауз (только при включённом разбросе)
	PauseMultiplier float64
	PauseChars      string
	// Нижняя граница задержки, всегда > 0
	MinDelay time.Duration
	// Масштаб базовой задержки 1/rate
	SpeedFactor float64
	// Прогресс отправляется каждые ProgressEvery символов и на последнем символе
	ProgressEvery int
	// Пауза между концом отсчёта и первым символом
	SettleDelay time.Duration

	OnInjectError InjectErrorPolicy
}

const (
	defaultMinDelay = time.Millisecond
	maxDelay        = time.Duration(math.MaxInt64)
)

// PolicyHuman — «человеческая» печать: разброс ±20%, заметные паузы на знаках препинания.
func PolicyHuman() Policy {
	return Policy{
		MinMultiplier:   0.8,
		MaxMultiplier:   1.2,
		PauseMultiplier: 1.5,
		PauseChars:      ".,!?;:\n",
		MinDelay:        defaultMinDelay,
		SpeedFactor:     1,
		ProgressEvery:   10,
		SettleDelay:     500 * time.Millisecond,
	}
}

// PolicyFast — печать на скорость: разброс ±10%, короткие паузы только на точке и переводе строки.
func PolicyFast() Policy {
	return Policy{
		MinMultiplier:   0.9,
		MaxMultiplier:   1.1,
		PauseMultiplier: 1.2,
		PauseChars:      ".\n",
		MinDelay:        defaultMinDelay,
		SpeedFactor:     1,
		ProgressEvery:   50,
		SettleDelay:     300 * time.Millisecond,
	}
}

// PolicyByName возвращает предустановленную политику: fast|human.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fast":
		return PolicyFast(), nil
	case "human":
		return PolicyHuman(), nil
	default:
		return Policy{}, fmt.Errorf("%w: неизвестный профиль %q", ErrInvalidPolicy, name)
	}
}

// Validate проверяет согласованность параметров.
func (p Policy) Validate() error {
	switch {
	case p.MinMultiplier <= 0 || p.MaxMultiplier <= 0:
		return fmt.Errorf("%w: множители разброса должны быть > 0", ErrInvalidPolicy)
	case p.MinMultiplier > p.MaxMultiplier:
		return fmt.Errorf("%w: MinMultiplier %v > MaxMultiplier %v", ErrInvalidPolicy, p.MinMultiplier, p.MaxMultiplier)
	case p.PauseMultiplier <= 0:
		return fmt.Errorf("%w: PauseMultiplier должен быть > 0", ErrInvalidPolicy)
	case p.SpeedFactor <= 0 || math.IsInf(p.SpeedFactor, 0) || math.IsNaN(p.SpeedFactor):
		return fmt.Errorf("%w: SpeedFactor должен быть конечным и > 0", ErrInvalidPolicy)
	case p.MinDelay <= 0:
		return fmt.Errorf("%w: MinDelay должен быть > 0, иначе печать превращается в цикл без пауз", ErrInvalidPolicy)
	case p.SettleDelay < 0:
		return fmt.Errorf("%w: SettleDelay не может быть отрицательным", ErrInvalidPolicy)
	case p.ProgressEvery < 1:
		return fmt.Errorf("%w: ProgressEvery должен быть >= 1", ErrInvalidPolicy)
	}
	return nil
}

// IsPause сообщает, получает ли символ дополнительную паузу.
func (p Policy) IsPause(r rune) bool {
	return strings.ContainsRune(p.PauseChars, r)
}

// BaseDelay — задержка без разброса: SpeedFactor / rate секунд, но не меньше MinDelay.
func (p Policy) BaseDelay(rate float64) time.Duration {
	return p.clamp(float64(time.Second) * p.SpeedFactor / rate)
}

// Delay считает задержку после символа r.
// sample возвращает число из [0, 1); вызывается только при jitter.
func (p Policy) Delay(r rune, rate float64, jitter bool, sample func() float64) time.Duration {
	ns := float64(time.Second) * p.SpeedFactor / rate
	if jitter {
		ns *= p.MinMultiplier + (p.MaxMultiplier-p.MinMultiplier)*sample()
		if p.IsPause(r) {
			ns *= p.PauseMultiplier
		}
	}
	return p.clamp(ns)
}

// clamp переводит наносекунды в Duration с нижней границей MinDelay.
// Очень большая скорость даёт ns → 0, очень маленькая — насыщение без переполнения.
func (p Policy) clamp(ns float64) time.Duration {
	var d time.Duration
	switch {
	case math.IsNaN(ns) || ns <= 0:
		d = 0
	case ns >= float64(maxDelay):
		d = maxDelay
	default:
		d = time.Duration(ns)
	}
	if d < p.MinDelay {
		return p.MinDelay
	}
	return d
}
