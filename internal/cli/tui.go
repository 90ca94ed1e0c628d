package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
)

// Messages
type buildProgressMsg pdb.Progress
type buildDoneMsg struct {
	db  *pdb.Database
	err error
}
type buildTickMsg time.Time

// tableState is the latest progress of one table.
type tableState struct {
	name    string
	size    int
	depth   int
	visited int
	done    bool
}

// buildModel shows per-table progress while tables build in the background.
type buildModel struct {
	tables    []*tableState
	byName    map[string]*tableState
	maxDepth  int
	startTime time.Time
	elapsed   time.Duration

	db       *pdb.Database
	err      error
	finished bool
	quitting bool
	cancel   context.CancelFunc
}

func newBuildModel(patterns []*pdb.Pattern, maxDepth int, cancel context.CancelFunc) *buildModel {
	m := &buildModel{
		byName:    make(map[string]*tableState),
		maxDepth:  maxDepth,
		startTime: time.Now(),
		cancel:    cancel,
	}
	for _, p := range patterns {
		ts := &tableState{name: p.Name(), size: p.Size(), visited: 1}
		m.tables = append(m.tables, ts)
		m.byName[ts.name] = ts
	}
	return m
}

func (m *buildModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *buildModel) tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return buildTickMsg(t)
	})
}

func (m *buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case buildTickMsg:
		if m.finished {
			return m, nil
		}
		m.elapsed = time.Since(m.startTime)
		return m, m.tickCmd()

	case buildProgressMsg:
		ts, ok := m.byName[msg.Table]
		if !ok {
			return m, nil
		}
		ts.depth = msg.Depth
		ts.visited = msg.Visited
		if msg.Discovered == 0 || (m.maxDepth > 0 && msg.Depth >= m.maxDepth) {
			ts.done = true
		}

	case buildDoneMsg:
		m.finished = true
		m.db = msg.db
		m.err = msg.err
		m.elapsed = time.Since(m.startTime)
		for _, ts := range m.tables {
			ts.done = msg.err == nil
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *buildModel) View() string {
	if m.quitting && !m.finished {
		return "Build cancelled.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Pattern Database Build"))
	b.WriteString("\n\n")

	for _, ts := range m.tables {
		b.WriteString(m.renderTable(ts))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(fmt.Sprintf("Elapsed: %s", formatDuration(m.elapsed.Round(time.Second)))))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	if !m.finished {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q=cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

const barWidth = 30

func (m *buildModel) renderTable(ts *tableState) string {
	frac := float64(ts.visited) / float64(ts.size)
	if ts.done {
		frac = 1
	}
	filled := int(frac * barWidth)
	bar := moveStyle.Render(strings.Repeat("█", filled)) +
		statusStyle.Render(strings.Repeat("░", barWidth-filled))

	state := fmt.Sprintf("depth %2d", ts.depth)
	if ts.done {
		state = moveStyle.Render("done    ")
	}

	name := lipgloss.NewStyle().Width(8).Render(ts.name)
	return fmt.Sprintf("%s %s %5.1f%%  %s  %s",
		labelStyle.Render(name), bar, 100*frac, state,
		statusStyle.Render(formatCount(int64(ts.visited))+" / "+formatCount(int64(ts.size))))
}

// runBuildTUI builds the tables while showing the progress view. Quitting
// the view cancels the build.
func runBuildTUI(ctx context.Context, patterns []*pdb.Pattern, workers int, opts pdb.BuildOptions) (*pdb.Database, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newBuildModel(patterns, opts.MaxDepth, cancel)
	p := tea.NewProgram(model)

	opts.OnProgress = func(pr pdb.Progress) {
		p.Send(buildProgressMsg(pr))
	}
	go func() {
		db, err := pdb.Build(ctx, patterns, workers, opts)
		p.Send(buildDoneMsg{db: db, err: err})
	}()

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("progress view error: %w", err)
	}
	if !model.finished {
		return nil, context.Canceled
	}
	return model.db, model.err
}
