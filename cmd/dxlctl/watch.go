package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/dynamixel/pkg/monitor"
	"github.com/gwillem/dynamixel/pkg/robot"
)

type WatchCommand struct {
	Hz      int               `long:"hz" default:"30" description:"Poll frequency"`
	Follow  map[string]string `long:"follow" description:"Drive a follower from a leader, as follower:leader (repeatable)"`
	Mirror  []string          `long:"mirror" description:"Invert the position copied to this follower (repeatable)"`
	Sensors bool              `long:"sensors" description:"Also poll sensor modules"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Distinct colors, assigned to actuators in configuration order.
var palette = []string{"196", "208", "226", "46", "51", "201", "33", "129"}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type watchModel struct {
	poller        *monitor.Poller
	chart         *streamlinechart.Model
	actuators     []robot.DeviceName
	colors        map[robot.DeviceName]string
	width         int
	height        int
	logs          []string
	sensors       map[robot.DeviceName]robot.SensorReading
	quitting      bool
	lastPositions map[robot.DeviceName]float64
}

func (m *watchModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// hasMovement checks if any actuator position has changed from the last state
func (m *watchModel) hasMovement(positions map[robot.DeviceName]float64) bool {
	if m.lastPositions == nil {
		return true
	}
	for name, pos := range positions {
		if lastPos, ok := m.lastPositions[name]; !ok || pos != lastPos {
			return true
		}
	}
	return false
}

type stateMsg monitor.State
type logMsg string

func waitForState(p *monitor.Poller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-p.States())
	}
}

func waitForLog(p *monitor.Poller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-p.Logs())
	}
}

func (m *watchModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = max(m.width-borderSize-2, 40)
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if len(m.sensors) > 0 {
		height -= len(m.sensors) + 1
	}
	return width, max(height, 10)
}

func (m *watchModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func newWatchModel(p *monitor.Poller, actuators []robot.DeviceName) watchModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-100, 100),
	)

	colors := make(map[robot.DeviceName]string, len(actuators))
	for i, name := range actuators {
		colors[name] = palette[i%len(palette)]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[name]))
		chart.SetDataSetStyles(string(name), runes.ThinLineStyle, style)
	}

	return watchModel{
		poller:    p,
		chart:     &chart,
		actuators: actuators,
		colors:    colors,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.poller),
		waitForLog(m.poller),
	)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		state := monitor.State(msg)
		if len(state.Positions) > 0 && m.hasMovement(state.Positions) {
			for name, pos := range state.Positions {
				m.chart.PushDataSet(string(name), pos)
			}
			m.chart.DrawAll()
			m.lastPositions = state.Positions
		}
		if state.Sensors != nil {
			m.sensors = state.Sensors
		}
		return m, waitForState(m.poller)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.poller)
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return "Watch stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Dynamixel Watch"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.poller.Hz()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(m.renderLegend())
	sb.WriteString("\n")

	if len(m.sensors) > 0 {
		sb.WriteString(m.renderSensors())
		sb.WriteString("\n")
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20)).
		Foreground(lipgloss.Color("9"))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m watchModel) renderLegend() string {
	var items []string
	for _, name := range m.actuators {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors[name])).Bold(true)
		item := colorStyle.Render("━━") + " " + string(name)
		if pos, ok := m.lastPositions[name]; ok {
			item += statusStyle.Render(fmt.Sprintf(" %+.0f", pos))
		}
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func (m watchModel) renderSensors() string {
	names := make([]string, 0, len(m.sensors))
	for name := range m.sensors {
		names = append(names, string(name))
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		r := m.sensors[robot.DeviceName(name)]
		lines = append(lines, fmt.Sprintf("%s  IR %3d %3d %3d  light %3d %3d %3d  sound %3d",
			subHeaderStyle.Render(name), r.IR[0], r.IR[1], r.IR[2], r.Light[0], r.Light[1], r.Light[2], r.Sound))
	}
	return strings.Join(lines, "\n")
}

func (c *WatchCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	var actuators []robot.DeviceName
	for _, d := range cfg.Actuators() {
		actuators = append(actuators, d.Name)
	}
	if len(actuators) == 0 && !c.Sensors {
		return errors.New("no actuators configured; run 'dxlctl setup' first")
	}

	mcfg := monitor.Config{
		Hz:      c.Hz,
		Follow:  make(map[robot.DeviceName]robot.DeviceName, len(c.Follow)),
		Mirror:  make(map[robot.DeviceName]bool, len(c.Mirror)),
		Sensors: c.Sensors,
	}
	for follower, leader := range c.Follow {
		for _, name := range []string{follower, leader} {
			if _, ok := cfg.Device(robot.DeviceName(name)); !ok {
				return fmt.Errorf("unknown device %q", name)
			}
		}
		mcfg.Follow[robot.DeviceName(follower)] = robot.DeviceName(leader)
	}
	for _, name := range c.Mirror {
		mcfg.Mirror[robot.DeviceName(name)] = true
	}

	poller := monitor.New(chain, mcfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- poller.Run(ctx)
	}()

	p := tea.NewProgram(newWatchModel(poller, actuators), tea.WithAltScreen())
	_, err = p.Run()
	cancel()
	if runErr := <-done; runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return err
}
