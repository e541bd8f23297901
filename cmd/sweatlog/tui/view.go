package tui

import (
	"fmt"
	"strings"
	"time"
)

const helpText = `# sweatlog

Track your workouts from the terminal.

## Keys

| Key | Action |
|-----|--------|
| tab | Switch between Workouts and Workout Types |
| up/down | Move the selection |
| a | Add an entry |
| e | Edit the selected entry |
| d | Delete the selected entry (asks for confirmation) |
| r | Reload both collections from the server |
| L | Log out and open the login page |
| ? | Toggle this help |
| q | Quit |

## Forms

Use tab to move between fields, up/down to pick a workout type,
enter to save and esc to cancel.
`

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.isLoading {
		return m.styles.Header.Render("sweatlog") + "\n\n  " +
			m.spinner.View() + " Loading workouts...\n"
	}

	if m.viewMode == HelpView {
		return m.renderHelp()
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	if m.errText != "" {
		sb.WriteString("  " + m.styles.Error.Render(m.errText) + "\n\n")
	}

	switch m.viewMode {
	case LogsView:
		sb.WriteString(m.renderLogs())
	case TypesView:
		sb.WriteString(m.renderTypes())
	}

	switch m.inputMode {
	case ModeLogForm:
		sb.WriteString("\n" + m.renderLogForm())
	case ModeTypeForm:
		sb.WriteString("\n" + m.renderTypeForm())
	case ModeConfirmDelete:
		sb.WriteString("\n" + m.renderConfirm())
	}

	sb.WriteString("\n" + m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("sweatlog")
	who := ""
	if u := m.session.User(); u != nil {
		who = m.styles.Muted.Render(fmt.Sprintf("  %s <%s>", u.Name, u.Email))
	}
	return title + who
}

func (m Model) renderTabs() string {
	logs := m.styles.TabInactive.Render(fmt.Sprintf("Workouts (%d)", len(m.logs)))
	types := m.styles.TabInactive.Render(fmt.Sprintf("Workout Types (%d)", len(m.types)))
	if m.viewMode == LogsView {
		logs = m.styles.TabActive.Render(fmt.Sprintf("Workouts (%d)", len(m.logs)))
	} else {
		types = m.styles.TabActive.Render(fmt.Sprintf("Workout Types (%d)", len(m.types)))
	}
	return "  " + logs + " " + types
}

func (m Model) renderLogs() string {
	if len(m.logs) == 0 {
		return m.renderEmpty("No workouts yet", "Press a to add your first workout.")
	}

	var sb strings.Builder
	for i, l := range m.logs {
		cursor := "  "
		line := fmt.Sprintf("%-24s %-14s %4d min", l.WorkoutType.Name, formatDate(l.Date), l.Minutes)
		if i == m.logCursor {
			cursor = m.styles.Selected.Render("> ")
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString("  " + cursor + line + "\n")
	}
	return sb.String()
}

func (m Model) renderTypes() string {
	if len(m.types) == 0 {
		return m.renderEmpty("No workout types yet", "Press a to add your first workout type.")
	}

	var sb strings.Builder
	for i, t := range m.types {
		cursor := "  "
		line := t.Name
		if m.typesInUse[t.ID] {
			line += m.styles.Muted.Render("  (in use)")
		}
		if i == m.typeCursor {
			cursor = m.styles.Selected.Render("> ")
		}
		sb.WriteString("  " + cursor + line + "\n")
	}
	return sb.String()
}

func (m Model) renderEmpty(title, hint string) string {
	return m.styles.Card.Render(
		m.styles.Title.Render(title) + "\n" + m.styles.Muted.Render(hint),
	) + "\n"
}

func (m Model) renderLogForm() string {
	f := m.logForm
	if f == nil {
		return ""
	}

	title := "Add Workout"
	if f.editing() {
		title = "Edit Workout"
	}

	typeName := "(select a workout type)"
	if f.typeIdx >= 0 && f.typeIdx < len(f.choices) {
		typeName = f.choices[f.typeIdx].Name
	}
	if f.focus == logFieldType {
		typeName = m.styles.Selected.Render("< " + typeName + " >")
	}

	var body strings.Builder
	body.WriteString(m.styles.FormTitle.Render(title) + "\n")
	body.WriteString(m.styles.FormLabel.Render("Date     ") + f.date.View() + "\n")
	body.WriteString(m.styles.FormLabel.Render("Type     ") + typeName + "\n")
	body.WriteString(m.styles.FormLabel.Render("Minutes  ") + f.minutes.View() + "\n")
	if f.errText != "" {
		body.WriteString(m.styles.Error.Render(f.errText) + "\n")
	}
	if m.busy {
		body.WriteString(m.spinner.View() + " Saving...")
	} else {
		body.WriteString(m.styles.Muted.Render("enter save · esc cancel · tab next field"))
	}

	return m.styles.Card.Render(body.String())
}

func (m Model) renderTypeForm() string {
	f := m.typeForm
	if f == nil {
		return ""
	}

	title := "Add Workout Type"
	if f.editing() {
		title = "Edit Workout Type"
	}

	var body strings.Builder
	body.WriteString(m.styles.FormTitle.Render(title) + "\n")
	body.WriteString(m.styles.FormLabel.Render("Name  ") + f.name.View() + "\n")
	if f.errText != "" {
		body.WriteString(m.styles.Error.Render(f.errText) + "\n")
	}
	if m.busy {
		body.WriteString(m.spinner.View() + " Saving...")
	} else {
		body.WriteString(m.styles.Muted.Render("enter save · esc cancel"))
	}

	return m.styles.Card.Render(body.String())
}

func (m Model) renderConfirm() string {
	if m.confirm == nil {
		return ""
	}
	what := "workout"
	if m.confirm.kind == deleteType {
		what = "workout type"
	}
	var body string
	if m.busy {
		body = m.spinner.View() + " Deleting..."
	} else {
		body = fmt.Sprintf("Delete %s %q? ", what, m.confirm.label) +
			m.styles.Muted.Render("(y/n)")
	}
	return m.styles.Card.Render(body)
}

func (m Model) renderFooter() string {
	parts := []string{"tab switch", "a add", "e edit", "d delete", "r reload", "? help", "q quit"}
	footer := m.styles.Footer.Render(strings.Join(parts, " · "))
	if m.status != "" {
		footer = m.styles.Success.Render("  "+m.status) + "\n" + footer
	}
	return footer
}

func (m Model) renderHelp() string {
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(helpText); err == nil {
			return rendered + m.styles.Footer.Render("esc back")
		}
	}
	return helpText
}

// formatDate pretty-prints an ISO calendar date, falling back to the raw
// string when it does not parse.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}
