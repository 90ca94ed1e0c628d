package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Slot colors: home and oriented, home but twisted, elsewhere.
	homeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	twistedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	movedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// renderCube draws the three slot groups of c, coloring each slot by how
// far its piece is from home.
func renderCube(c *cube.Cube) string {
	groups := []struct {
		name     string
		from, to int
	}{
		{"left  ", 0, 8},
		{"right ", 8, 16},
		{"middle", 16, 20},
	}

	var rows []string
	for _, g := range groups {
		cells := []string{labelStyle.Render(g.name)}
		for s := g.from; s < g.to; s++ {
			cells = append(cells, renderSlot(c, s))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return boxStyle.Render(strings.Join(rows, "\n"))
}

func renderSlot(c *cube.Cube, s int) string {
	v := c.Slot(s)
	text := fmt.Sprintf("%4s", v.String())
	switch {
	case v.Position() != s:
		return movedStyle.Render(text)
	case v.Axis() != cube.SolvedAxis(s):
		return twistedStyle.Render(text)
	default:
		return homeStyle.Render(text)
	}
}

// formatDuration formats a duration for tables and summaries.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%d:%05.2f", mins, secs)
	}
}

// formatCount groups digits in thousands: 264539520 -> 264,539,520.
func formatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// shortID returns the first eight characters of a solve ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
