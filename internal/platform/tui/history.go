package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-life/internal/storage"
)

const historyDateLayout = "2006-01-02 15:04"

// RenderHistory draws recent sessions as a table followed by a stats footer.
func RenderHistory(sessions []storage.Session, stats *storage.Stats) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Recent sessions"))
	sb.WriteRune('\n')

	if len(sessions) == 0 {
		sb.WriteString("No sessions recorded yet.")
	} else {
		sb.WriteString(historyTable(sessions).View())
	}

	if stats != nil {
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "sessions %d  commands %d  longest run %d generations  avg population %.1f",
			stats.Sessions, stats.TotalCommands, stats.MaxGenerations, stats.AvgPopulation)
		if !stats.LastSession.IsZero() {
			fmt.Fprintf(&sb, "  last %s", stats.LastSession.Local().Format(historyDateLayout))
		}
	}
	return sb.String()
}

func historyTable(sessions []storage.Session) table.Model {
	columns := []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "User", Width: 12},
		{Title: "Cmds", Width: 6},
		{Title: "Gens", Width: 6},
		{Title: "Field", Width: 9},
		{Title: "Alive", Width: 6},
	}

	rows := make([]table.Row, len(sessions))
	for i, sess := range sessions {
		user := sess.User
		if user == "" {
			user = "-"
		}
		field := "-"
		if sess.Columns > 0 && sess.Rows > 0 {
			field = fmt.Sprintf("%dx%d", sess.Columns, sess.Rows)
		}
		rows[i] = table.Row{
			sess.EndedAt.Local().Format(historyDateLayout),
			user,
			strconv.Itoa(sess.Commands),
			strconv.Itoa(sess.Generations),
			field,
			strconv.Itoa(sess.Population),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}
