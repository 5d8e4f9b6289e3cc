package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/parser"
)

// JobSaver creates and updates jobs.
type JobSaver interface {
	CreateJob(ctx context.Context, userID uint, req db.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, userID, jobID uint, req db.UpdateJobRequest) (*models.Job, error)
}

// Step is the current step of the job form.
type Step int

const (
	StepName Step = iota
	StepRate
	StepDescription
	StepSave
)

var stepLabels = []string{"Name", "Hourly rate", "Description", "Save"}

// JobFormModel is a step-by-step form for creating or editing a job.
type JobFormModel struct {
	ctx    context.Context
	store  JobSaver
	userID uint

	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	// Edit mode
	isEditMode bool
	editJobID  uint

	err           error
	validationErr string
	completed     bool
	cancelled     bool
	saved         *models.Job
}

// NewJobFormModel returns a form for a new job. prefilled may carry "name",
// "rate" and "description".
func NewJobFormModel(ctx context.Context, store JobSaver, userID uint, prefilled map[string]string) JobFormModel {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepName].Placeholder = "Job name... (required)"
	inputs[StepName].CharLimit = 120
	inputs[StepName].Focus()

	inputs[StepRate].Placeholder = "20, 18.50 or $20/h (Enter for the default rate)"
	inputs[StepRate].CharLimit = 20

	inputs[StepDescription].Placeholder = "Description (Enter to skip)"
	inputs[StepDescription].CharLimit = 500

	inputs[StepName].SetValue(prefilled["name"])
	inputs[StepRate].SetValue(prefilled["rate"])
	inputs[StepDescription].SetValue(prefilled["description"])

	return JobFormModel{
		ctx:         ctx,
		store:       store,
		userID:      userID,
		currentStep: StepName,
		inputs:      inputs,
	}
}

// NewEditJobFormModel returns a form that updates job jobID.
func NewEditJobFormModel(ctx context.Context, store JobSaver, userID uint, job *models.Job) JobFormModel {
	prefilled := map[string]string{
		"name": job.Name,
		"rate": fmt.Sprintf("%g", job.HourlyRate),
	}
	if job.Description != nil {
		prefilled["description"] = *job.Description
	}
	m := NewJobFormModel(ctx, store, userID, prefilled)
	m.isEditMode = true
	m.editJobID = job.ID
	return m
}

func (m JobFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m JobFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := min(max(m.width*2/3-10, 30), 80)
		for i := range m.inputs {
			m.inputs[i].Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		case "tab", "down":
			if m.currentStep == StepName && m.name() == "" {
				m.validationErr = "Job name is required"
				return m, nil
			}
			return m.nextStep()
		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m JobFormModel) name() string { return strings.TrimSpace(m.inputs[StepName].Value()) }

func (m JobFormModel) rateValue() string { return strings.TrimSpace(m.inputs[StepRate].Value()) }

func (m JobFormModel) handleEnter() (JobFormModel, tea.Cmd) {
	m.validationErr = ""
	switch m.currentStep {
	case StepName:
		if m.name() == "" {
			m.validationErr = "Job name is required"
			return m, nil
		}
	case StepRate:
		if v := m.rateValue(); v != "" {
			if _, err := parser.MustParseRate(v); err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
		}
	case StepSave:
		return m.save()
	}
	return m.nextStep()
}

func (m JobFormModel) nextStep() (JobFormModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

func (m JobFormModel) prevStep() (JobFormModel, tea.Cmd) {
	if m.currentStep > StepName {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

func (m JobFormModel) save() (JobFormModel, tea.Cmd) {
	var rate *float64
	if r, ok := parser.ParseRate(m.rateValue()); ok {
		rate = &r
	}
	name := m.name()
	desc := m.inputs[StepDescription].Value()

	var (
		job *models.Job
		err error
	)
	if m.isEditMode {
		job, err = m.store.UpdateJob(m.ctx, m.userID, m.editJobID, db.UpdateJobRequest{
			Name:        &name,
			Description: &desc,
			HourlyRate:  rate,
		})
	} else {
		job, err = m.store.CreateJob(m.ctx, m.userID, db.CreateJobRequest{
			Name:        name,
			Description: &desc,
			HourlyRate:  rate,
		})
	}
	if err != nil {
		m.err = err
		m.validationErr = err.Error()
		return m, nil
	}
	m.saved = job
	m.completed = true
	return m, tea.Quit
}

func (m JobFormModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	var b strings.Builder
	title := "🧾 New Job"
	if m.isEditMode {
		title = fmt.Sprintf("🧾 Edit Job #%d", m.editJobID)
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render(title))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	pending := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
		}
		switch {
		case step == m.currentStep:
			b.WriteString(current.Render("▶ " + label))
		case step < m.currentStep && step < StepSave && strings.TrimSpace(m.inputs[step].Value()) != "":
			b.WriteString(filled.Render("✓ " + label))
		default:
			b.WriteString(pending.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.currentStep < StepSave {
		b.WriteString(stepLabels[m.currentStep] + "\n")
		b.WriteString(m.inputs[m.currentStep].View())
	} else {
		b.WriteString(m.renderSummary())
		b.WriteString("\nPress Enter to save")
	}

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			MarginTop(1).
			Render("❌ " + m.validationErr))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("Enter: Next | Tab/↓: Next | Shift+Tab/↑: Back | Esc: Cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)
	if m.width > 0 {
		box = box.Width(min(m.width-4, 90))
	}
	return box.Render(b.String())
}

func (m JobFormModel) renderSummary() string {
	rate := "default"
	if r, ok := parser.ParseRate(m.rateValue()); ok {
		rate = fmt.Sprintf("$%.2f/h", r)
	}
	desc := strings.TrimSpace(m.inputs[StepDescription].Value())
	if desc == "" {
		desc = "none"
	}
	return fmt.Sprintf("Name: %s\nRate: %s\nDescription: %s\n", m.name(), rate, desc)
}
