// Package viz renders a live terminal view of a running simulation:
// energy and temperature sparklines plus the per-step diagnostics.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/argonmd/internal/md"
	"github.com/san-kum/argonmd/internal/sim"
)

const (
	graphWidth      = 70
	graphHeight     = 8
	historyCapacity = 600
)

type TickMsg time.Time

type Model struct {
	sim   *sim.Simulator
	state *md.State

	stepsPerTick int
	frameRate    int
	running      bool
	err          error

	last     sim.Diagnostics
	utotHist []float64
	tcHist   []float64
}

func NewModel(simulator *sim.Simulator, state *md.State, stepsPerTick, frameRate int) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	return Model{
		sim:          simulator,
		state:        state,
		stepsPerTick: stepsPerTick,
		frameRate:    frameRate,
		running:      true,
		utotHist:     make([]float64, 0, historyCapacity),
		tcHist:       make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}

	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerTick; i++ {
				d, err := m.sim.Step(m.state)
				if err != nil {
					m.err = err
					break
				}
				m.last = d
			}
			m.utotHist = pushCapped(m.utotHist, m.last.Utot)
			m.tcHist = pushCapped(m.tcHist, m.last.Tc)
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("argonmd live — %d atoms — %s", m.state.NumAtom, m.sim.Backend().Name())))
	b.WriteString("\n")

	status := statusRunning.Render("running")
	if !m.running {
		status = statusPaused.Render("paused")
	}

	rows := []struct {
		label string
		value string
	}{
		{"status", status},
		{"step", fmt.Sprintf("%d", m.last.Step)},
		{"time", fmt.Sprintf("%.4f", m.last.Time)},
		{"U_pot", fmt.Sprintf("%.6f", m.last.Up)},
		{"U_kin", fmt.Sprintf("%.6f", m.last.Uk)},
		{"U_total", fmt.Sprintf("%.6f", m.last.Utot)},
		{"temperature", fmt.Sprintf("%.6f", m.last.Tc)},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}

	if len(m.utotHist) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.utotHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("total energy"),
		)))
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.tcHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("temperature"),
		)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space: pause/resume  q: quit"))
	return b.String()
}

func pushCapped(hist []float64, v float64) []float64 {
	if len(hist) >= historyCapacity {
		hist = hist[1:]
	}
	return append(hist, v)
}
