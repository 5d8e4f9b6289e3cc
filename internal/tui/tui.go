package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/timesheet"
)

// RunTimerTUI shows the live timer for an open record. Pressing o clocks the
// session out through store; esc leaves it running.
func RunTimerTUI(ctx context.Context, store ClockOuter, userID uint, record *models.ClockRecord, rate float64) error {
	p := tea.NewProgram(NewTimerModel(record, rate), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(TimerModel)
	if !ok {
		return nil
	}
	switch {
	case m.clockingOut:
		closed, err := store.ClockOut(ctx, userID, record.JobID)
		if err != nil {
			return fmt.Errorf("failed to clock out: %w", err)
		}
		amt := timesheet.Compute(&closed.ClockIn, closed.ClockOut, rate)
		fmt.Printf("⏹️  Clocked out of %s at %s\n", m.jobName, closed.ClockOut.Local().Format(timesheet.ClockLayout))
		fmt.Printf("📊 %s hours · $%s\n", *amt.HoursString(), *amt.PayString())
	case m.exiting:
		fmt.Printf("\n💡 You are still clocked in to %s.\n", m.jobName)
		fmt.Printf("   Use 'punch status' to check it or 'punch out' to clock out.\n")
	}
	return nil
}

// RunJobFormTUI runs a job form and reports the outcome.
func RunJobFormTUI(model JobFormModel) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(JobFormModel); ok {
		switch {
		case m.cancelled:
			fmt.Println("❌ Cancelled.")
		case m.completed && m.saved != nil:
			verb := "added"
			if m.isEditMode {
				verb = "updated"
			}
			fmt.Printf("✅ Job \"%s\" %s - ID: %d ($%s/h)\n", m.saved.Name, verb, m.saved.ID, timesheet.FormatMoney(m.saved.HourlyRate))
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}
	return nil
}
