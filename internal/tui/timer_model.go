package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/timesheet"
)

// ClockOuter closes open sessions.
type ClockOuter interface {
	ClockOut(ctx context.Context, userID uint, jobID *uint) (*models.ClockRecord, error)
}

// TimerModel shows a running session: elapsed time and the pay earned so far.
type TimerModel struct {
	width  int
	height int

	record  *models.ClockRecord
	jobName string
	rate    float64
	now     func() time.Time

	elapsed        time.Duration
	timerAnimation int

	clockingOut bool // o pressed
	exiting     bool // esc/q pressed, session keeps running
}

type timerTickMsg struct{}

type animationTickMsg struct{}

// NewTimerModel creates a timer for an open record. rate is the hourly rate
// the running pay is computed with.
func NewTimerModel(record *models.ClockRecord, rate float64) TimerModel {
	m := TimerModel{
		record:  record,
		jobName: "No job",
		rate:    rate,
		now:     time.Now,
	}
	if record.Job != nil {
		m.jobName = record.Job.Name
	}
	m.elapsed = m.now().Sub(record.ClockIn)
	return m
}

func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), animationTick())
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{} })
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} })
}

func (m TimerModel) done() bool { return m.clockingOut || m.exiting }

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = m.now().Sub(m.record.ClockIn)
		if m.done() {
			return m, nil
		}
		return m, timerTick()

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4
		if m.done() {
			return m, nil
		}
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "o", "O":
			m.clockingOut = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// runningPay is the pay for the elapsed time at the session's rate.
func (m TimerModel) runningPay() timesheet.Amount {
	in := m.record.ClockIn
	out := in.Add(m.elapsed)
	return timesheet.Compute(&in, &out, m.rate)
}

func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTimerPanel(m.width, contentHeight), helpBar)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)
	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
}

func (m TimerModel) renderTimerPanel(width, height int) string {
	var components []string

	animChars := []string{"◐", "◓", "◑", "◒"}
	animChar := animChars[m.timerAnimation]
	header := centered(width).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(fmt.Sprintf("%s  CLOCKED IN  %s", animChar, animChar))
	components = append(components, header)

	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render(truncate(m.jobName, width-4)))

	var clock []string
	for _, line := range strings.Split(renderBigClock(m.elapsed), "\n") {
		clock = append(clock, centered(width).Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	pay := m.runningPay()
	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorMoney)).
		Bold(true).
		Render("$"+timesheet.FormatMoney(pay.Pay)))

	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Render("Clocked in at "+m.record.ClockIn.Local().Format(timesheet.ClockLayout)))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

var logoLines = []string{
	"██████╗ ██╗   ██╗███╗   ██╗ ██████╗██╗  ██╗",
	"██╔══██╗██║   ██║████╗  ██║██╔════╝██║  ██║",
	"██████╔╝██║   ██║██╔██╗ ██║██║     ███████║",
	"██╔═══╝ ██║   ██║██║╚██╗██║██║     ██╔══██║",
	"██║     ╚██████╔╝██║ ╚████║╚██████╗██║  ██║",
	"╚═╝      ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝",
}

func (m TimerModel) renderDetailsPanel(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(centered(width - 8).
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render(strings.Join(logoLines, "\n")))
	b.WriteString("\n\n")

	b.WriteString(centered(width - 8).
		Foreground(lipgloss.Color(ColorBorder)).
		Render(strings.Repeat("─", min(width-12, 40))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1).
		Render(m.jobName))
	b.WriteString("\n\n")

	jobValue, jobColor := "none", ColorDisabledText
	if m.record.JobID != nil {
		jobValue, jobColor = fmt.Sprintf("#%d", *m.record.JobID), ColorAccentBright
	}
	rows := []struct {
		icon, label, value, color string
	}{
		{"🧾", "Job", jobValue, jobColor},
		{"💵", "Rate", "$" + timesheet.FormatMoney(m.rate) + "/h", ColorMoney},
		{"📅", "Date", m.record.Date, ColorSecondaryText},
		{"⏰", "In", m.record.ClockIn.Local().Format(timesheet.ClockLayout), ColorSecondaryText},
		{"🔢", "Session", fmt.Sprintf("#%d", m.record.ID), ColorSecondaryText},
	}
	for _, r := range rows {
		line := fmt.Sprintf("%s %s: %s", r.icon, r.label,
			lipgloss.NewStyle().Foreground(lipgloss.Color(r.color)).Render(r.value))
		b.WriteString(centered(width - 8).Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Height(height).Render(b.String())
}

func (m TimerModel) renderHelpBar() string {
	return centered(m.width).
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("o clock out · esc/q exit (keep running) · ctrl+c force quit")
}

// bigDigits are 5x5 glyphs for the clock display.
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
	'-': {"     ", "     ", "█████", "     ", "     "},
}

// renderBigClock draws d as HH:MM:SS (or MM:SS under an hour) in block glyphs.
// A negative duration, from a clock that moved backwards, gets a leading minus.
func renderBigClock(d time.Duration) string {
	var lines [5]strings.Builder
	for _, r := range clockText(d) {
		glyph, ok := bigDigits[r]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(glyph[i])
			lines[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = style.Render(lines[i].String())
	}
	return strings.Join(out, "\n")
}

func clockText(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	mnt := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, mnt, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, mnt, s)
}

func truncate(s string, width int) string {
	if width < 4 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	switch {
	case d.Hours() >= 1 || d.Hours() <= -1:
		return fmt.Sprintf("%.1fh", d.Hours())
	case d.Minutes() >= 1 || d.Minutes() <= -1:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
