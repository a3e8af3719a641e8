package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
	"github.com/darylhandley/15five-utils/pkg/domain/user"
)

var (
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	heading = color.New(color.Bold)
)

// renderTable renders a static bordered table.
func renderTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Bold(true)
	s.Selected = lipgloss.NewStyle() // Disable selection style for static view
	t.SetStyles(s)

	return t.View()
}

func renderUsersTable(users []user.User) string {
	if len(users) == 0 {
		return "No users found."
	}

	columns := []table.Column{
		{Title: "User ID", Width: 8},
		{Title: "Full Name", Width: 28},
		{Title: "Title", Width: 32},
		{Title: "Active", Width: 6},
	}

	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		title := "N/A"
		if u.Title != nil {
			title = *u.Title
		}
		active := "No"
		if u.IsActive {
			active = "Yes"
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", u.ID), u.FullName, title, active})
	}

	return renderTable(columns, rows)
}

func renderObjectivesCompact(baseURL string, objectives []objective.Objective) string {
	if len(objectives) == 0 {
		return "No objectives found."
	}

	columns := []table.Column{
		{Title: "ID", Width: 9},
		{Title: "User", Width: 22},
		{Title: "Description", Width: 53},
		{Title: "KRs", Width: 4},
	}

	rows := make([]table.Row, 0, len(objectives))
	for _, o := range objectives {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", o.ID),
			o.User.Name,
			truncate(o.Description, 50),
			fmt.Sprintf("%d", len(o.KeyResults)),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d objective(s):\n", len(objectives))
	b.WriteString(renderTable(columns, rows))
	b.WriteString("\n")
	for _, o := range objectives {
		fmt.Fprintf(&b, "%d: %s\n", o.ID, objectiveLink(baseURL, o.ID))
	}
	return b.String()
}

func renderObjectiveDetail(baseURL string, o *objective.Objective) string {
	var b strings.Builder

	fmt.Fprintf(&b, "OBJECTIVE #%d\n", o.ID)
	fmt.Fprintf(&b, "User: %s\n", o.User.Name)
	fmt.Fprintf(&b, "Period: %s → %s\n", o.StartDate(), o.EndDate())
	fmt.Fprintf(&b, "Progress: %s%%\n", o.Percentage)
	fmt.Fprintf(&b, "Link: %s\n", objectiveLink(baseURL, o.ID))
	if o.HasParent() {
		fmt.Fprintf(&b, "Parent: %d\n", *o.Parent)
	}
	if len(o.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", o.TagNames())
	}

	b.WriteString("\nDescription:\n")
	b.WriteString(o.Description + "\n")

	if len(o.KeyResults) > 0 {
		b.WriteString("\nKEY RESULTS:\n")
		for i, kr := range o.KeyResults {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, kr.Description)
			fmt.Fprintf(&b, "     Owner: %s\n", kr.Owner.Name)
			fmt.Fprintf(&b, "     Progress: %s (%s → %s)\n",
				kr.CurrentValueDisplay, kr.StartValueDisplay, kr.TargetValueDisplay)
			if i < len(o.KeyResults)-1 {
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func renderObjectivesFull(baseURL string, objectives []objective.Objective) string {
	if len(objectives) == 0 {
		return "No objectives found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d objective(s):\n\n", len(objectives))
	for i := range objectives {
		b.WriteString(renderObjectiveDetail(baseURL, &objectives[i]))
		if i < len(objectives)-1 {
			b.WriteString("\n" + strings.Repeat("═", 80) + "\n\n")
		}
	}
	return b.String()
}

func objectiveLink(baseURL string, id int) string {
	return fmt.Sprintf("%s/objectives/details/%d/", baseURL, id)
}

// truncate shortens a description on a word boundary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if at := strings.LastIndex(s[:max+1], " "); at > 0 {
		return s[:at] + "..."
	}
	return s[:max] + "..."
}
