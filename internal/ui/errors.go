package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"htmlreporter/internal/domain"
	"htmlreporter/internal/report"
)

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	out io.Writer
}

// NewErrorViewer creates a new ErrorViewer. out receives the message shown
// when there is nothing to view.
func NewErrorViewer(out io.Writer) *ErrorViewer {
	return &ErrorViewer{out: out}
}

// View displays the failed and errored tests of groups
func (ev *ErrorViewer) View(groups []report.GroupReport) error {
	failures := Failures(groups)
	if len(failures) == 0 {
		color.New(color.FgGreen).Fprintln(ev.out, "✓ No test failures found!")
		return nil
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for failed tests (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, f := range failures {
		list.AddItem(listItemText(i, f), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Stats header above the details
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Test Failures (%d total) | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ", len(failures)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(formatFailureStats(failures[index]))
			detailsView.SetText(formatFailureDetails(failures[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(index int, f Failure) string {
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(f.Case.Desc))
}

// formatFailureDetails formats a failure using tview color tags. Captured
// text is escaped so brackets in it are not read as tags.
func formatFailureDetails(f Failure) string {
	var b strings.Builder

	tag := "red"
	if f.Case.Status == domain.StatusError {
		tag = "fuchsia"
	}
	fmt.Fprintf(&b, "[%s]✗ %s: %s[white]\n\n", tag, f.Case.Status, tview.Escape(f.Case.Desc))
	fmt.Fprintf(&b, "[cyan]Group: %s[white]\n", tview.Escape(f.Group))
	fmt.Fprintf(&b, "[cyan]Duration: %.3fs[white]\n\n", f.Case.Duration)

	if f.Case.Detail != nil {
		fmt.Fprintf(&b, "[yellow]Details:[white]\n%s\n", tview.Escape(*f.Case.Detail))
	}
	return b.String()
}

// formatFailureStats formats the stats header for a failure
func formatFailureStats(f Failure) string {
	return fmt.Sprintf("[cyan]id:[white] [yellow]%s[white]  [cyan]group:[white] [yellow]%s[white]\n",
		f.Case.ID, tview.Escape(f.Group))
}
