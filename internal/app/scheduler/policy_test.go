package scheduler

import (
	"errors"
	"math"
	"testing"
	"time"

	"TextTyper/internal/config"
)

func TestRateFromWPM(t *testing.T) {
	cases := map[float64]float64{
		60:   5,
		1200: 100,
		3000: 250,
	}
	for wpm, want := range cases {
		if got := RateFromWPM(wpm); got != want {
			t.Errorf("RateFromWPM(%v) = %v, want %v", wpm, got, want)
		}
	}
}

func TestDelayJitterBounds(t *testing.T) {
	for _, p := range []Policy{PolicyFast(), PolicyHuman()} {
		base := float64(p.BaseDelay(10))
		for _, u := range []float64{0, 0.25, 0.5, 0.75, 0.999999} {
			sample := func() float64 { return u }

			d := float64(p.Delay('a', 10, true, sample))
			if d < base*p.MinMultiplier-1 || d > base*p.MaxMultiplier+1 {
				t.Fatalf("u=%v: %v outside [%v, %v]", u, d, base*p.MinMultiplier, base*p.MaxMultiplier)
			}

			dp := float64(p.Delay('.', 10, true, sample))
			lo := base * p.MinMultiplier * p.PauseMultiplier
			hi := base * p.MaxMultiplier * p.PauseMultiplier
			if dp < lo-1 || dp > hi+1 {
				t.Fatalf("pause u=%v: %v outside [%v, %v]", u, dp, lo, hi)
			}
		}
	}
}

func TestDelayWithoutJitterIgnoresPauseChars(t *testing.T) {
	p := PolicyHuman()
	for _, r := range []rune{'a', '.', ',', '\n'} {
		if got := p.Delay(r, 10, false, nil); got != 100*time.Millisecond {
			t.Fatalf("%q: got %v, want 100ms", r, got)
		}
	}
}

func TestDelayClamp(t *testing.T) {
	p := PolicyFast()
	if got := p.Delay('a', 1e15, false, nil); got != p.MinDelay {
		t.Fatalf("huge rate: got %v, want floor %v", got, p.MinDelay)
	}
	if got := p.Delay('a', 1e-300, false, nil); got != time.Duration(math.MaxInt64) {
		t.Fatalf("tiny rate must saturate, got %v", got)
	}
	if got := p.Delay('a', math.Inf(1), true, func() float64 { return 0 }); got != p.MinDelay {
		t.Fatalf("infinite rate: got %v, want floor %v", got, p.MinDelay)
	}
}

func TestSpeedFactorScalesBaseDelay(t *testing.T) {
	p := PolicyFast()
	p.SpeedFactor = 0.5
	if got := p.BaseDelay(10); got != 50*time.Millisecond {
		t.Fatalf("got %v, want 50ms", got)
	}
}

func TestPolicyByName(t *testing.T) {
	if p, err := PolicyByName(" Human "); err != nil || p.ProgressEvery != PolicyHuman().ProgressEvery {
		t.Fatalf("human: %+v, %v", p, err)
	}
	if p, err := PolicyByName(""); err != nil || p.PauseChars != PolicyFast().PauseChars {
		t.Fatalf("default: %+v, %v", p, err)
	}
	if _, err := PolicyByName("turbo"); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestPolicyValidate(t *testing.T) {
	mutations := map[string]func(*Policy){
		"min > max":        func(p *Policy) { p.MinMultiplier, p.MaxMultiplier = 1.5, 1.0 },
		"zero multiplier":  func(p *Policy) { p.MinMultiplier = 0 },
		"zero pause":       func(p *Policy) { p.PauseMultiplier = 0 },
		"nan speed":        func(p *Policy) { p.SpeedFactor = math.NaN() },
		"negative delay":   func(p *Policy) { p.MinDelay = -time.Millisecond },
		"no delay floor":   func(p *Policy) { p.MinDelay = 0 },
		"negative settle":  func(p *Policy) { p.SettleDelay = -time.Millisecond },
		"zero progression": func(p *Policy) { p.ProgressEvery = 0 },
	}
	for name, mutate := range mutations {
		p := PolicyFast()
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidPolicy) {
			t.Errorf("%s: expected ErrInvalidPolicy, got %v", name, err)
		}
	}
	if err := PolicyHuman().Validate(); err != nil {
		t.Fatalf("human preset: %v", err)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Profile = config.ProfileHuman
	cfg.SpeedFactor = 2
	cfg.MinDelay = 5 * time.Millisecond
	cfg.ProgressEvery = 3
	cfg.SettleDelay = 0
	cfg.OnInjectError = config.OnInjectErrorAbort

	p, err := PolicyFromConfig(cfg)
	if err != nil {
		t.Fatalf("PolicyFromConfig: %v", err)
	}
	if p.SpeedFactor != 2 || p.MinDelay != 5*time.Millisecond || p.ProgressEvery != 3 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.SettleDelay != 0 {
		t.Fatalf("explicit zero settle delay must be kept, got %v", p.SettleDelay)
	}
	if p.OnInjectError != AbortOnError {
		t.Fatalf("on inject error: %v", p.OnInjectError)
	}
	if p.PauseChars != PolicyHuman().PauseChars {
		t.Fatalf("profile values must stay: %q", p.PauseChars)
	}

	// Значения по умолчанию берутся из профиля
	p, err = PolicyFromConfig(config.Defaults())
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if p != PolicyFast() {
		t.Fatalf("defaults must equal fast preset: %+v", p)
	}
}
