// Package viz renders a live terminal view of a running cell simulation.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/san"
)

const (
	historyCapacity = 600

	// stepsPerFrame keeps wall-clock frame rate decoupled from the small
	// integration step the model needs.
	stepsPerFrame = 400

	achStep = 1e-6
	norStep = 1e-7
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the interactive view: it owns the cell, steps it on every
// frame tick and plots the recent membrane potential.
type Model struct {
	cell       *san.Cell
	integrator dynamo.Integrator
	state      dynamo.State
	t, dt      float64
	running    bool
	history    []float64
	caHistory  []float64
	runErr     error
}

func NewModel(cell *san.Cell, integ dynamo.Integrator, dt float64) Model {
	return Model{
		cell:       cell,
		integrator: integ,
		state:      cell.InitialState(),
		dt:         dt,
		running:    true,
		history:    make([]float64, 0, historyCapacity),
		caHistory:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "a":
			m.bumpModulators(achStep, 0)
		case "A":
			m.bumpModulators(-achStep, 0)
		case "n":
			m.bumpModulators(0, norStep)
		case "N":
			m.bumpModulators(0, -norStep)
		}
	case TickMsg:
		if m.running && m.runErr == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) bumpModulators(dAch, dNor float64) {
	ach := m.cell.ACh() + dAch
	nor := m.cell.Noradrenaline() + dNor
	if ach < 0 {
		ach = 0
	}
	if nor < 0 {
		nor = 0
	}
	if err := m.cell.Update(ach, nor); err != nil {
		m.runErr = err
	}
}

func (m *Model) step() {
	for i := 0; i < stepsPerFrame; i++ {
		next, err := m.integrator.Step(m.cell, m.state, m.t, m.dt)
		if err != nil {
			m.runErr = err
			m.running = false
			return
		}
		m.state = next
		m.t += m.dt
	}

	m.history = append(m.history, m.state[0])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	m.caHistory = append(m.caHistory, m.state[17]*1e6)
	if len(m.caHistory) > historyCapacity {
		m.caHistory = m.caHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.cell.InitialState()
	m.history = m.history[:0]
	m.caHistory = m.caHistory[:0]
	m.runErr = nil
	m.running = true
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("HUMAN SAN PACEMAKER CELL") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(10), asciigraph.Width(70),
			asciigraph.Caption("membrane potential (mV)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.caHistory) > 1 {
		chart := asciigraph.Plot(m.caHistory,
			asciigraph.Height(5), asciigraph.Width(70),
			asciigraph.Caption("intracellular Ca2+ (nM)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f s", m.t)) + "\n")
	s.WriteString(labelStyle.Render("V") + valueStyle.Render(fmt.Sprintf("%.2f mV", m.state[0])) + "\n")
	s.WriteString(labelStyle.Render("ACh") + valueStyle.Render(fmt.Sprintf("%.3g mM", m.cell.ACh())) + "\n")
	s.WriteString(labelStyle.Render("Noradrenaline") + valueStyle.Render(fmt.Sprintf("%.3g mM", m.cell.Noradrenaline())) + "\n")

	if m.runErr != nil {
		s.WriteString("\n" + errStyle.Render(m.runErr.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("space pause · r reset · a/A acetylcholine · n/N noradrenaline · q quit"))
	return s.String()
}

// Run starts the interactive view and blocks until the user quits.
func Run(cell *san.Cell, integ dynamo.Integrator, dt float64) error {
	p := tea.NewProgram(NewModel(cell, integ, dt))
	_, err := p.Run()
	return err
}
