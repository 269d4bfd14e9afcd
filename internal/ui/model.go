// Package ui — терминальный интерфейс: поле для текста, настройки и статус печати.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"TextTyper/internal/app/scheduler"
	"TextTyper/internal/service/history"
	"TextTyper/internal/service/textsource"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Границы настроек, как у ползунков исходного интерфейса
const (
	MinWPM        = 200
	MaxWPM        = 10000
	WPMStep       = 100
	MinStartDelay = 1
	MaxStartDelay = 15
)

// Scheduler — то, что UI нужно от планировщика.
type Scheduler interface {
	Submit(p scheduler.Params) (*scheduler.Job, error)
	Cancel(j *scheduler.Job)
}

// Settings — значения, которые пользователь выбирает перед запуском.
type Settings struct {
	WPM        int
	StartDelay int
	Jitter     bool
	Bulk       bool
}

// Clamp приводит значения к допустимым границам интерфейса.
func (s Settings) Clamp() Settings {
	s.WPM = min(MaxWPM, max(MinWPM, s.WPM))
	s.StartDelay = min(MaxStartDelay, max(MinStartDelay, s.StartDelay))
	return s
}

// Params собирает неизменяемые параметры задания.
func (s Settings) Params(text string) scheduler.Params {
	return scheduler.Params{
		Text:       text,
		Rate:       scheduler.RateFromWPM(float64(s.WPM)),
		Jitter:     s.Jitter,
		Bulk:       s.Bulk,
		StartDelay: s.StartDelay,
	}
}

// eventMsg — очередное событие активного задания.
type eventMsg struct {
	ev scheduler.Event
}

// jobClosedMsg — поток событий задания закрыт.
type jobClosedMsg struct{}

// clipboardMsg — результат чтения буфера обмена.
// insert — вставить в позицию курсора (ctrl+v), иначе заменить весь текст (ctrl+r).
type clipboardMsg struct {
	text   string
	err    error
	insert bool
}

// tabMark показывает табуляцию в поле ввода: textarea заменяет '\t' пробелами,
// а печатать нужно исходный текст.
const tabMark = '␉'

func markTabs(s string) string   { return strings.ReplaceAll(s, "\t", string(tabMark)) }
func unmarkTabs(s string) string { return strings.ReplaceAll(s, string(tabMark), "\t") }

type statusKind int

const (
	statusInfo statusKind = iota
	statusError
	statusSuccess
)

// Model — модель bubbletea.
type Model struct {
	sched    Scheduler
	history  *history.History
	styles   Styles
	input    textarea.Model
	settings Settings

	job        *scheduler.Job
	status     string
	statusKind statusKind
	timer      string

	readClipboard func() (string, error)
	width         int
}

func New(sched Scheduler, hist *history.History, settings Settings) Model {
	ta := textarea.New()
	ta.Placeholder = "Вставьте сюда текст для печати…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(10)
	ta.Focus()

	return Model{
		sched:         sched,
		history:       hist,
		styles:        DefaultStyles(),
		input:         ta,
		settings:      settings.Clamp(),
		status:        "Готово",
		readClipboard: textsource.FromClipboard,
	}
}

func (m Model) Init() tea.Cmd { return textarea.Blink }

// Settings возвращает текущие настройки.
func (m Model) Settings() Settings { return m.settings }

// Busy сообщает, выполняется ли задание.
func (m Model) Busy() bool { return m.job != nil }

// Status возвращает текст строки статуса.
func (m Model) Status() string { return m.status }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(20, msg.Width-4))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		return m.handleEvent(msg.ev)

	case jobClosedMsg:
		m.job = nil
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.setStatus(statusError, "Ошибка: "+msg.err.Error())
			return m, nil
		}
		if msg.insert {
			m.input.InsertString(markTabs(msg.text))
			return m, nil
		}
		m.input.SetValue(markTabs(msg.text))
		m.setStatus(statusInfo, fmt.Sprintf("Текст из буфера обмена: %d символов", len([]rune(msg.text))))
		return m, nil
	}

	if m.job == nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "ctrl+c", "ctrl+q":
		if m.job != nil {
			m.sched.Cancel(m.job)
		}
		return m, tea.Quit
	case "ctrl+s":
		return m.start()
	case "esc":
		if m.job != nil {
			m.sched.Cancel(m.job)
			m.setStatus(statusInfo, "Отмена…")
		}
		return m, nil
	}

	// Пока идёт печать, настройки и текст не меняются
	if m.job != nil {
		return m, nil
	}

	switch k.String() {
	case "f2":
		m.settings.WPM -= WPMStep
	case "f3":
		m.settings.WPM += WPMStep
	case "f4":
		m.settings.StartDelay--
	case "f5":
		m.settings.StartDelay++
	case "f6":
		m.settings.Jitter = !m.settings.Jitter
	case "f7":
		m.settings.Bulk = !m.settings.Bulk
	case "ctrl+l":
		m.input.Reset()
		m.setStatus(statusInfo, "Текст очищен")
	case "ctrl+r":
		return m, m.clipboard(false)
	case "ctrl+v":
		return m, m.clipboard(true)
	default:
		if k.Paste {
			k.Runes = []rune(markTabs(string(k.Runes)))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(k)
		return m, cmd
	}
	m.settings = m.settings.Clamp()
	return m, nil
}

func (m Model) clipboard(insert bool) tea.Cmd {
	read := m.readClipboard
	return func() tea.Msg {
		text, err := read()
		return clipboardMsg{text: text, err: err, insert: insert}
	}
}

// Text возвращает текст для печати: табуляции восстановлены, хвостовой перевод строки убран.
func (m Model) Text() string {
	return textsource.TrimCaptureNewline(unmarkTabs(m.input.Value()))
}

func (m Model) start() (tea.Model, tea.Cmd) {
	if m.job != nil {
		m.setStatus(statusError, "Ошибка: печать уже выполняется")
		return m, nil
	}
	job, err := m.sched.Submit(m.settings.Params(m.Text()))
	switch {
	case errors.Is(err, scheduler.ErrEmptyInput):
		m.setStatus(statusError, "Ошибка: нет текста для печати")
		return m, nil
	case err != nil:
		m.setStatus(statusError, "Ошибка: "+err.Error())
		return m, nil
	}
	m.job = job
	m.input.Blur()
	m.setStatus(statusInfo, "Подготовка…")
	return m, waitEvent(job.Events())
}

func (m Model) handleEvent(ev scheduler.Event) (tea.Model, tea.Cmd) {
	if m.job == nil || ev.JobID != m.job.ID() {
		return m, nil
	}
	switch ev.Type {
	case scheduler.EventCountdown:
		m.timer = fmt.Sprintf("⏰ %d", ev.Remaining)
		m.setStatus(statusInfo, fmt.Sprintf("Старт через %d с. Переключитесь в нужное окно!", ev.Remaining))
	case scheduler.EventEmitting:
		m.timer = "⚡ ПЕЧАТЬ"
		m.setStatus(statusInfo, "Печать…")
	case scheduler.EventProgress:
		m.setStatus(statusInfo, fmt.Sprintf("Печать: %d%% (%d/%d)", ev.Percent(), ev.Emitted, ev.Total))
	case scheduler.EventCompleted:
		m.timer = "✔ ГОТОВО"
		msg := "Печать завершена"
		if ev.Failures > 0 {
			msg = fmt.Sprintf("Печать завершена, не введено символов: %d", ev.Failures)
		}
		m.setStatus(statusSuccess, msg)
	case scheduler.EventCancelled:
		m.timer = ""
		if ev.Err != nil {
			m.setStatus(statusError, "Печать прервана: "+ev.Err.Error())
		} else {
			m.setStatus(statusInfo, fmt.Sprintf("Печать отменена (%d/%d)", ev.Emitted, ev.Total))
		}
	}
	if ev.Terminal() {
		m.job = nil
		m.input.Focus()
		return m, nil
	}
	return m, waitEvent(m.job.Events())
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// waitEvent читает следующее событие задания.
func waitEvent(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return jobClosedMsg{}
		}
		return eventMsg{ev: ev}
	}
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("TextTyper"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	onOff := func(v bool) string {
		if v {
			return s.On.Render("вкл")
		}
		return s.Off.Render("выкл")
	}
	settings := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		s.Label.Render("Скорость:"), s.Value.Render(fmt.Sprintf("%d WPM", m.settings.WPM)),
		s.Label.Render("Старт через:"), s.Value.Render(fmt.Sprintf("%d с", m.settings.StartDelay)),
		s.Label.Render("Разброс:"), onOff(m.settings.Jitter),
		s.Label.Render("Мгновенно:"), onOff(m.settings.Bulk),
	)
	b.WriteString(s.Settings.Render(settings))
	b.WriteString("\n")

	status := s.Status
	switch m.statusKind {
	case statusError:
		status = s.Error
	case statusSuccess:
		status = s.Success
	}
	b.WriteString(status.Render(m.status))
	if m.timer != "" {
		b.WriteString("  ")
		b.WriteString(s.Timer.Render(m.timer))
	}
	b.WriteString("\n")

	if m.history != nil {
		if recent := m.history.Recent(); len(recent) > 0 {
			last := recent[len(recent)-1]
			b.WriteString(s.Muted.Render(fmt.Sprintf("Последнее задание: %s, %d/%d, %s",
				last.Outcome, last.Emitted, last.Total, last.FinishedAt.Format("15:04:05"))))
			b.WriteString("\n")
		}
	}

	b.WriteString(s.Help.Render("ctrl+s старт • esc отмена • F2/F3 скорость • F4/F5 задержка • F6 разброс • F7 мгновенно • ctrl+r из буфера • ctrl+v вставить • ctrl+l очистить • ctrl+c выход"))
	return b.String()
}
