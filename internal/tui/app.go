// Package tui is the interactive terminal front end. It is strictly a
// collaborator of the engine: it reads availability, rates and values,
// forwards elapsed time to the session clock, and submits purchase
// requests by upgrade id.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/napolitain/eras/internal/catalog"
	"github.com/napolitain/eras/internal/game"
	"github.com/napolitain/eras/internal/save"
)

// tick cadence for driving the simulation; the clock bounds each step
// independently of this value.
const tickInterval = 100 * time.Millisecond

// App runs the interactive session
type App struct {
	Session  *game.Session
	SavePath string
}

// Run blocks until the player quits
func (a *App) Run() error {
	m := newModel(a.Session, a.SavePath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	session  *game.Session
	savePath string

	treeIDs   []string
	treeIdx   int
	cursor    int
	status    string
	lastTick  time.Time
	sinceSave float64
}

func newModel(s *game.Session, savePath string) model {
	return model{
		session:  s,
		savePath: savePath,
		treeIDs:  s.Catalog.TreeIDs(),
		lastTick: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		m.session.Tick(dt)

		if interval := m.session.Config.AutosaveInterval; interval > 0 && m.savePath != "" {
			m.sinceSave += dt
			if m.sinceSave >= interval {
				m.sinceSave = 0
				if err := save.Write(m.savePath, m.session); err == nil {
					m.status = "Autosaved"
				}
			}
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if ev := m.session.Events.Pending(); ev != nil {
			return m.updateEvent(ev, msg)
		}
		return m.updateMain(msg)
	}

	return m, nil
}

func (m model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.treeUpgradeIDs())-1 {
			m.cursor++
		}
	case "tab", "right", "l":
		m.treeIdx = (m.treeIdx + 1) % len(m.treeIDs)
		m.cursor = 0
	case "left", "h":
		m.treeIdx = (m.treeIdx + len(m.treeIDs) - 1) % len(m.treeIDs)
		m.cursor = 0

	case "enter", "b":
		ids := m.treeUpgradeIDs()
		if m.cursor < len(ids) {
			m.status = m.buy(ids[m.cursor])
		}

	case " ":
		if m.session.Clock.TogglePause() {
			m.status = "Paused"
		} else {
			m.status = "Resumed"
		}
	case "+", "=":
		m.session.Clock.SetSpeed(m.session.Clock.Multiplier * 2)
		m.status = fmt.Sprintf("Speed %.2gx", m.session.Clock.Multiplier)
	case "-":
		m.session.Clock.SetSpeed(m.session.Clock.Multiplier / 2)
		m.status = fmt.Sprintf("Speed %.2gx", m.session.Clock.Multiplier)

	case "n":
		year, ok := game.NextUnlockYear(m.session.Catalog, m.session.State)
		if !ok {
			m.status = "Nothing further unlocks"
			break
		}
		if m.session.TimeSkip(year) {
			m.status = fmt.Sprintf("Skipped to year %d", year)
		} else {
			m.status = "Cannot skip: a resource would run dry"
		}

	case "r":
		m.session.Reset()
		m.cursor = 0
		m.status = "Session reset"

	case "s":
		if m.savePath == "" {
			m.status = "No save path configured"
			break
		}
		if err := save.Write(m.savePath, m.session); err != nil {
			m.status = fmt.Sprintf("Save failed: %v", err)
		} else {
			m.status = "Saved to " + m.savePath
		}
	}

	return m, nil
}

func (m model) updateEvent(ev *catalog.Event, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.session.Events.Dismiss()
		m.status = "Event dismissed"
		return m, nil
	}

	// Number keys pick a choice.
	for i, choice := range ev.Choices {
		if msg.String() == fmt.Sprintf("%d", i+1) {
			if err := m.session.ResolveEvent(choice.ID); err != nil {
				m.status = fmt.Sprintf("Cannot pick %q: %v", choice.Text, err)
			} else {
				m.status = choice.Text
			}
			return m, nil
		}
	}

	return m, nil
}

// buy attempts a purchase and renders the outcome as a status line
func (m model) buy(id string) string {
	u, _ := m.session.Catalog.Upgrade(id)
	if err := m.session.Purchase(id); err != nil {
		st := game.Status(m.session.Catalog, m.session.State, m.session.Ledger, id)
		return fmt.Sprintf("Cannot buy %s: %s", u.Name, st)
	}
	return "Purchased " + u.Name
}
