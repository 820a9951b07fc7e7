package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/angeloszaimis/lb-dashboard/internal/dashboard"
	"github.com/angeloszaimis/lb-dashboard/internal/poller"
)

const (
	cardWidth = 26
	barWidth  = 20
)

func (m Model) View() string {
	if m.frame == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("LB DASHBOARD"),
			dimStyle.Render("connecting…"),
			m.help.View(keys))
	}

	f := m.frame
	sections := []string{
		m.header(f),
		summaryView(f.Board.Summary),
		cardsView(f.Board.Cards, m.width),
		flowView(f.Board.Flow, m.pulse),
		logView(f),
	}
	if m.refreshErr != nil && !f.Stale() {
		sections = append(sections, staleStyle.Render("refresh: "+m.refreshErr.Error()))
	}
	sections = append(sections, m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header(f *poller.Frame) string {
	parts := []string{titleStyle.Render("LB DASHBOARD")}
	if !f.UpdatedAt.IsZero() {
		parts = append(parts, dimStyle.Render("updated "+f.UpdatedAt.Format("15:04:05")))
	}
	if f.Stale() {
		parts = append(parts, staleStyle.Render("STALE: "+f.LastError))
	}
	return strings.Join(parts, " ")
}

func summaryView(s dashboard.Summary) string {
	field := func(label, value string) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(value)
	}
	return strings.Join([]string{
		field("Total requests", s.TotalRequests),
		field("Uptime", s.Uptime),
		field("Servers", s.Servers),
	}, dimStyle.Render(" │ "))
}

func cardsView(cards []dashboard.Card, width int) string {
	if len(cards) == 0 {
		return dimStyle.Render("no servers reported")
	}

	perRow := len(cards)
	if width > 0 {
		perRow = max(1, width/(cardWidth+4))
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		row := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			row = append(row, cardView(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cardView(c dashboard.Card) string {
	style, status := cardStyle, statusOnlineStyle
	switch {
	case c.Offline:
		style, status = offlineCardStyle, statusOfflineStyle
	case c.Active:
		style, status = activeCardStyle, statusActiveStyle
	}

	requests := fmt.Sprintf("%d req", c.Requests)
	if c.Counting {
		requests = pulseStyle.Render(requests + " ▲")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		valueStyle.Render(c.Name)+" "+status.Render(string(c.Status)),
		dimStyle.Render(c.URL),
		bar(c.BarPercent)+fmt.Sprintf(" %3d%%", c.BarPercent),
		requests,
	))
}

func bar(percent int) string {
	filled := min(barWidth, max(0, percent*barWidth/100))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// flowView draws the balancer and servers in order. The pulse is drawn on the
// connector leading into server node pulse.
func flowView(nodes []dashboard.FlowNode, pulse int) string {
	if len(nodes) == 0 {
		return ""
	}

	parts := make([]string, 0, len(nodes)*2)
	for i, n := range nodes {
		if i > 0 {
			parts = append(parts, connector(i-1 == pulse))
		}
		parts = append(parts, nodeView(n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func connector(withPulse bool) string {
	if withPulse {
		return "──" + pulseStyle.Render("●") + "──"
	}
	return "─────"
}

func nodeView(n dashboard.FlowNode) string {
	label := n.Label
	if n.Caption != "" {
		label += " " + n.Caption
	}

	switch {
	case n.Balancer:
		return balancerStyle.Render(label)
	case n.Offline:
		return offlineNodeStyle.Render(label)
	case n.Active:
		return activeNodeStyle.Render(label)
	default:
		return nodeStyle.Render(label)
	}
}

func logView(f *poller.Frame) string {
	title := sectionStyle.Render("Event log") + " " + dimStyle.Render("("+f.LogCount+")")

	lines := make([]string, 0, len(f.Log))
	for _, l := range f.Log {
		if f.Placeholder {
			l = dimStyle.Render(l)
		}
		lines = append(lines, l)
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...)
}
