package player

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat — формат, который плеер не умеет декодировать.
var ErrUnsupportedFormat = errors.New("unsupported format for direct playback; use mp3 or wav")

// Player воспроизводит аудио потоком в зависимости от формата.
type Player interface {
	Play(format string, r io.ReadCloser) error
}

type decoder func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decoder{
	"mp3": mp3.Decode,
	"wav": func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) },
}

// Default реализует Player для mp3 и wav.
// Динамик инициализируется один раз; звуки с другой частотой ресемплируются.
type Default struct {
	volumeDB float64

	mu   sync.Mutex // один звук за раз
	once sync.Once
	rate beep.SampleRate
	err  error
}

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

func (d *Default) Play(format string, r io.ReadCloser) error {
	dec, ok := decoders[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	streamer, f, err := dec(r)
	if err != nil {
		return err
	}
	defer streamer.Close()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.once.Do(func() {
		d.rate = f.SampleRate
		d.err = speaker.Init(f.SampleRate, f.SampleRate.N(time.Second/10))
	})
	if d.err != nil {
		return d.err
	}

	var s beep.Streamer = streamer
	if f.SampleRate != d.rate {
		s = beep.Resample(4, f.SampleRate, d.rate, s)
	}
	vol := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   d.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
