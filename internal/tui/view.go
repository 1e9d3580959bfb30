package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/napolitain/eras/internal/catalog"
	"github.com/napolitain/eras/internal/game"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	ownedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	availStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	eventBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(1, 2)
)

func (m model) View() string {
	if ev := m.session.Events.Pending(); ev != nil {
		return m.viewEvent(ev)
	}

	var b strings.Builder

	clock := m.session.Clock
	pause := ""
	if clock.Paused {
		pause = "  [PAUSED]"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Year %d", clock.Year)))
	b.WriteString(headerStyle.Render(fmt.Sprintf("  (%.0f%% to next)  speed %.2gx%s", clock.ProgressPercent(), clock.Multiplier, pause)))
	b.WriteString("\n\n")

	b.WriteString(m.viewResources())
	b.WriteString("\n")
	b.WriteString(m.viewTree())

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(lockedStyle.Render("↑/↓ select · enter buy · tab tree · space pause · +/- speed · n skip · s save · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m model) viewResources() string {
	var b strings.Builder
	l := m.session.Ledger

	for _, id := range l.ResourceIDs() {
		st, _ := l.State(id)
		rate := st.Rate()
		sign := "+"
		if rate < 0 {
			sign = ""
		}
		b.WriteString(fmt.Sprintf("  %-12s %10.1f  (%s%.2f/s)\n", st.Definition.Name, st.Value, sign, rate))
	}
	return b.String()
}

func (m model) viewTree() string {
	var b strings.Builder

	// Tree tabs.
	var tabs []string
	for i, id := range m.treeIDs {
		name := m.session.Catalog.Trees[id].Name
		if i == m.treeIdx {
			tabs = append(tabs, availStyle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, lockedStyle.Render(" "+name+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	for i, id := range m.treeUpgradeIDs() {
		u, _ := m.session.Catalog.Upgrade(id)
		status := game.Status(m.session.Catalog, m.session.State, m.session.Ledger, id)

		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}

		line := fmt.Sprintf("%-24s %s  %s", u.Name, renderCosts(u), status)
		switch status {
		case game.StatusOwned:
			line = ownedStyle.Render(line)
		case game.StatusAvailable:
			line = availStyle.Render(line)
		default:
			line = lockedStyle.Render(line)
		}

		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

func (m model) viewEvent(ev *catalog.Event) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(ev.Title))
	b.WriteString("\n\n")
	b.WriteString(ev.Description)
	b.WriteString("\n\n")

	for i, choice := range ev.Choices {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, choice.Text))
		if len(choice.Cost) > 0 {
			b.WriteString(lockedStyle.Render("  costs: " + renderCostList(choice.Cost)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(lockedStyle.Render("1-9 choose · esc dismiss"))

	return eventBoxStyle.Render(b.String())
}

// treeUpgradeIDs lists the active tree's upgrades sorted by tier, then
// year, then id, matching the catalog's layout hints.
func (m model) treeUpgradeIDs() []string {
	tree := m.session.Catalog.Trees[m.treeIDs[m.treeIdx]]

	var ids []string
	for id := range tree.Upgrades {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := tree.Upgrades[ids[i]], tree.Upgrades[ids[j]]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.ID < b.ID
	})
	return ids
}

func renderCosts(u *catalog.Upgrade) string {
	return renderCostList(u.Cost)
}

func renderCostList(costs []catalog.ResourceCost) string {
	if len(costs) == 0 {
		return "free"
	}
	parts := make([]string, 0, len(costs))
	for _, c := range costs {
		parts = append(parts, fmt.Sprintf("%.0f %s", c.Amount, c.Resource))
	}
	return strings.Join(parts, ", ")
}
