// Package tui renders the pomodoro timer as a full-screen terminal view.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/notifier"
	"github.com/julianstephens/waketrack/internal/pomodoro"
)

// tickMsg carries the id of the tick loop that produced it so that a
// restarted timer does not run two loops at once.
type tickMsg struct{ id int }

// SaveFunc persists the timer; it is called on every phase change and on quit.
type SaveFunc func(*pomodoro.Timer) error

type Model struct {
	timer    *pomodoro.Timer
	notify   notifier.Notifier
	save     SaveFunc
	keys     KeyMap
	help     help.Model
	bar      progress.Model
	tickID   int
	status   string
	Quitting bool
}

func New(timer *pomodoro.Timer, n notifier.Notifier, save SaveFunc) Model {
	if n == nil {
		n = notifier.Nop{}
	}
	return Model{
		timer:  timer,
		notify: n,
		save:   save,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m Model) Timer() *pomodoro.Timer { return m.timer }

func (m Model) Init() tea.Cmd {
	return nil
}

func tick(id int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{id: id} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-8, 60))
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.id != m.tickID || !m.timer.Session.IsActive {
			return m, nil
		}
		if tr, done := m.timer.Tick(); done {
			m.finish(tr)
			return m, nil
		}
		return m, tick(m.tickID)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.persist()
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.timer.Session.IsActive {
				m.timer.Pause()
				m.status = "Paused"
				return m, nil
			}
			m.timer.Start()
			m.status = ""
			m.tickID++
			return m, tick(m.tickID)
		case key.Matches(msg, m.keys.Reset):
			m.timer.Reset()
			m.status = "Timer reset"
		case key.Matches(msg, m.keys.Skip):
			m.finish(m.timer.Skip())
		case key.Matches(msg, m.keys.ResetAll):
			m.timer.ResetAll()
			m.status = "Started a new cycle"
			m.persist()
		}
	}
	return m, nil
}

// finish reports a completed phase and saves the timer.
func (m *Model) finish(tr pomodoro.Transition) {
	m.status = tr.Message
	if err := m.notify.Notify(tr.Title, tr.Message); err != nil {
		logger.Warn("Failed to send pomodoro notification", "error", err)
	}
	m.persist()
}

func (m *Model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.timer); err != nil {
		logger.Error("Failed to save pomodoro timer", "error", err)
		m.status = "Could not save timer: " + err.Error()
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	s := m.timer.Session

	var b strings.Builder
	b.WriteString(phaseLabel(s.Type))
	b.WriteString("\n\n")
	b.WriteString(clockStyle.Render(pomodoro.FormatTime(s.Remaining)))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.timer.Progress() / 100))
	b.WriteString("\n\n")

	state := "stopped"
	if s.IsActive {
		state = "running"
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · completed sessions: %d · long break every %d",
		state, s.CompletedSessions, m.timer.Settings.LongBreakInterval)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return docStyle.Render(b.String())
}
