package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	if m.view == ViewLogin {
		body = m.loginView()
	} else {
		body = m.chartView()
	}

	if m.modal != "" {
		body += "\n\n" + modalStyle.Render(m.modal+"\n(press any key)")
	}

	return body
}

func (m Model) loginView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("WortMonitor"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("E-mail"))
	b.WriteString("\n")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	check := "[ ]"
	if m.remember {
		check = "[x]"
	}
	remember := check + " Remember me"
	if m.focusIdx == 2 {
		remember = titleStyle.Render(remember)
	}
	b.WriteString(remember)
	b.WriteString("\n")

	if m.busy {
		b.WriteString("\n" + labelStyle.Render("Signing in..."))
	}
	if m.notice != "" {
		b.WriteString("\n" + noticeStyle.Render(m.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("tab: next field • space: toggle • enter: sign in • ctrl+c: quit"))

	return b.String()
}

func (m Model) chartView() string {
	width := m.width - 4
	if width < 16 {
		width = 16
	}

	unit := seriesUnits[m.selected]
	values := m.set[m.selected]

	header := titleStyle.Render("WortMonitor — " + m.selected)
	if !m.lastUpdated.IsZero() {
		header = lipgloss.JoinHorizontal(lipgloss.Top,
			header,
			labelStyle.Render("  updated "+m.lastUpdated.Format("15:04:05")))
	}

	lines := []string{header, ""}

	if len(values) == 0 {
		lines = append(lines, labelStyle.Render("no data"))
	} else {
		lo, hi, last := seriesBounds(values)
		lines = append(lines,
			chartStyle.Render(sparkline(values, width)),
			fmt.Sprintf("min %.2f %s   max %.2f %s   last %.2f %s",
				lo, unit, hi, unit, last, unit),
		)
	}

	if tr := timeRange(m.set["time"]); tr != "" {
		lines = append(lines, labelStyle.Render(
			fmt.Sprintf("%s   samples: %d", tr, m.set.Len())))
	}

	if voltage, ok := m.set.Last("voltage"); ok {
		level := ClassifyBattery(voltage)
		lines = append(lines, "battery: "+batteryStyles[level].Render(level.Label(voltage)))
	}

	if m.busy {
		lines = append(lines, labelStyle.Render("refreshing..."))
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}

	lines = append(lines, "",
		footerStyle.Render("r: refresh • tab: series • l: log out • ctrl+c: quit"))

	return strings.Join(lines, "\n")
}
