package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/pkg/types"
)

type replayTickMsg time.Time

// replayModel steps a cube from its scramble through a solution.
type replayModel struct {
	scramble []types.Move
	solution []types.Move
	state    cube.Cube
	index    int
	speed    float64
	stepMode bool
	paused   bool
	quitting bool
}

func newReplayModel(scramble, solution []types.Move, speed float64, stepMode bool) *replayModel {
	if speed <= 0 {
		speed = 1
	}
	m := &replayModel{
		scramble: scramble,
		solution: solution,
		speed:    speed,
		stepMode: stepMode,
		paused:   stepMode,
	}
	m.reset()
	return m
}

func (m *replayModel) reset() {
	m.state = cube.Solved()
	m.state.ApplyMoves(m.scramble)
	m.index = 0
}

func (m *replayModel) Init() tea.Cmd {
	if m.paused {
		return nil
	}
	return m.scheduleNext()
}

func (m *replayModel) scheduleNext() tea.Cmd {
	if m.index >= len(m.solution) {
		return nil
	}
	delay := time.Duration(float64(time.Second) / m.speed)
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return replayTickMsg(t)
	})
}

// step applies the next solution move.
func (m *replayModel) step() {
	if m.index < len(m.solution) {
		m.state.ApplyMove(m.solution[m.index])
		m.index++
	}
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n":
			if m.paused {
				m.step()
				return m, nil
			}
			m.paused = true

		case "p":
			if m.stepMode {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused {
				return m, m.scheduleNext()
			}

		case "r":
			m.reset()

		case "+", "=":
			m.speed = min(m.speed*2, 16)

		case "-":
			m.speed = max(m.speed/2, 0.25)
		}

	case replayTickMsg:
		if !m.paused {
			m.step()
			return m, m.scheduleNext()
		}
	}

	return m, nil
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Solution Replay"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Move %d/%d", m.index, len(m.solution))
	if m.paused {
		progress += " [PAUSED]"
	}
	if m.stepMode {
		progress += " [STEP MODE]"
	}
	b.WriteString(statusStyle.Render(progress))
	fmt.Fprintf(&b, " (%.2g moves/s)\n\n", m.speed)

	b.WriteString(renderCube(&m.state))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Scramble:"), types.FormatMoves(m.scramble))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Solution:"), m.renderSolution())

	if m.state.IsSolved() {
		b.WriteString("\n")
		b.WriteString(moveStyle.Render("SOLVED!"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "SPACE/n=next  p=pause  r=reset  +/-=speed  q=quit"
	if m.stepMode {
		help = "SPACE/n=next move  r=reset  q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// renderSolution highlights the moves already applied.
func (m *replayModel) renderSolution() string {
	parts := make([]string, len(m.solution))
	for i, mv := range m.solution {
		if i < m.index {
			parts[i] = moveStyle.Render(mv.Notation())
		} else {
			parts[i] = statusStyle.Render(mv.Notation())
		}
	}
	return strings.Join(parts, " ")
}
