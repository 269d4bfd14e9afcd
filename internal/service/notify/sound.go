package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"TextTyper/internal/service/player"

	"go.uber.org/zap"
)

// SoundNotifier проигрывает короткие звуки начала и конца печати.
// Пустой путь отключает соответствующий звук.
type SoundNotifier struct {
	logger    *zap.SugaredLogger
	pathStart string
	pathDone  string
	ply       player.Player
}

// NewSoundNotifier создаёт нотификатор. Относительные пути ищутся сначала рядом с бинарём,
// затем от текущей рабочей директории.
func NewSoundNotifier(logger *zap.SugaredLogger, ply player.Player, pathStart, pathDone string) *SoundNotifier {
	if ply == nil {
		ply = player.New()
	}
	return &SoundNotifier{
		logger:    logger,
		pathStart: resolve(pathStart),
		pathDone:  resolve(pathDone),
		ply:       ply,
	}
}

func resolve(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if exe, err := os.Executable(); err == nil {
		cand := filepath.Join(filepath.Dir(exe), p)
		if _, statErr := os.Stat(cand); statErr == nil {
			return cand
		}
	}
	return filepath.FromSlash(p)
}

// Enabled сообщает, настроен ли хотя бы один звук.
func (n *SoundNotifier) Enabled() bool {
	return n.pathStart != "" || n.pathDone != ""
}

func (n *SoundNotifier) play(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	default:
	}

	f, err := os.Open(path)
	if err != nil {
		n.logger.Warnw("Не удалось открыть звуковой файл уведомления", "path", path, "error", err)
		return err
	}
	// Декодер beep закрывает файл вместе со стримером; Close здесь на случай ошибки декодирования
	defer f.Close()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		ext = "mp3"
	}
	if err := n.ply.Play(ext, f); err != nil {
		n.logger.Warnw("Не удалось воспроизвести звуковое уведомление", "path", path, "error", err)
		return err
	}
	return nil
}

// PlayStart проигрывает звук начала ввода (после обратного отсчёта).
func (n *SoundNotifier) PlayStart(ctx context.Context) error { return n.play(ctx, n.pathStart) }

// PlayDone проигрывает звук успешного завершения печати.
func (n *SoundNotifier) PlayDone(ctx context.Context) error { return n.play(ctx, n.pathDone) }
