package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/dynamixel/internal/log"
	"github.com/gwillem/dynamixel/pkg/actuator"
	"github.com/gwillem/dynamixel/pkg/robot"
	"github.com/gwillem/dynamixel/pkg/sensor"
	"github.com/gwillem/dynamixel/pkg/transport"
)

var errNoDevices = errors.New("no devices answered; check power, wiring and the baud rate (--baud)")

// modelAXS1 is the model number an AX-S1 sensor module reports.
const modelAXS1 = 13

type SetupCommand struct {
	NoCalibrate bool `long:"no-calibrate" description:"Only identify and name devices"`
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Dynamixel Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━"))
	fmt.Println()

	cfg := &robot.Config{}
	if existing, err := robot.LoadConfigFrom(globals.Config); err == nil {
		cfg = existing
	}

	// Step 1: pick the port
	port, err := choosePort(cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port
	if globals.Baud > 0 {
		cfg.BaudRate = globals.Baud
	}

	bus, err := transport.Open(cfg.Transport())
	if err != nil {
		return err
	}
	chain := robot.NewChain(bus, nil)
	defer chain.Close()

	// Step 2: find and name devices
	fmt.Printf("Pinging IDs 0-253 on %s...\n", port)
	ids, err := discover(bus)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d device(s). Let's identify them...\n\n", len(ids))

	var devices []robot.DeviceConfig
	for _, id := range ids {
		d, ok, err := identifyDevice(chain, cfg, id)
		if err != nil {
			return err
		}
		if ok {
			devices = append(devices, d)
		}
	}
	cfg.Devices = devices
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Save after naming
	if err := cfg.SaveTo(globals.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	log.Info("config saved", "path", globals.Config, "devices", len(cfg.Devices))

	// Step 3: calibrate actuators
	if !c.NoCalibrate && len(cfg.Actuators()) > 0 {
		fmt.Println()
		fmt.Println(subHeaderStyle.Render("━━━ Calibrating Actuators ━━━"))
		fmt.Println()
		if err := calibrate(chain, cfg); err != nil {
			return err
		}
		if err := cfg.SaveTo(globals.Config); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		ok, err := confirm("Write the calibrated ranges as angle limits?", "Puts every calibrated actuator in joint mode.")
		if err != nil {
			return err
		}
		if ok {
			ctx, cancel := commandContext()
			err := robot.NewChain(bus, cfg.Devices).ApplyLimits(ctx)
			cancel()
			if err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
			}
		}
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", globals.Config)
	fmt.Println()
	fmt.Println("Watch your devices with: " + headerStyle.Render("dxlctl watch"))

	return nil
}

// discover pings every ID and fails when nothing answers.
func discover(bus pinger) ([]int, error) {
	ids, err := pingRange(bus, 0, 253)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errNoDevices
	}
	return ids, nil
}

func choosePort(current string) (string, error) {
	if globals.Port != "" {
		return globals.Port, nil
	}
	ports, err := scanPorts()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", errors.New("no serial ports found; is the adapter plugged in?")
	}
	if len(ports) == 1 {
		fmt.Printf("Using %s\n", ports[0])
		return ports[0], nil
	}

	options := make([]huh.Option[string], 0, len(ports))
	for _, p := range ports {
		options = append(options, huh.NewOption(p, p).Selected(p == current))
	}
	port := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which port is the Dynamixel bus on?").
				Options(options...).
				Value(&port),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return port, nil
}

// identifyDevice makes the device noticeable and asks for its name.
func identifyDevice(chain *robot.Chain, cfg *robot.Config, id int) (robot.DeviceConfig, bool, error) {
	ctx, cancel := commandContext()
	defer cancel()

	kind := robot.KindActuator
	model, err := chain.Actuator().ModelNumber(ctx, id)
	if err == nil && model == modelAXS1 {
		kind = robot.KindSensor
	}

	fmt.Printf("\n  ID %d: model %d\n", id, model)
	if kind == robot.KindSensor {
		beep(ctx, chain.Sensor(), id)
	} else {
		wiggle(ctx, chain.Actuator(), id)
	}

	name := fmt.Sprintf("%s%d", kind, id)
	var existing *robot.Calibration
	if d, ok := cfg.ByID(id); ok {
		name = string(d.Name)
		existing = d.Calibration
	}
	kindValue := string(kind)
	keep := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Add device %d to the configuration?", id)).
				Description("The device that just moved or beeped").
				Value(&keep),
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Actuator (AX-12)", string(robot.KindActuator)),
					huh.NewOption("Sensor module (AX-S1)", string(robot.KindSensor)),
				).
				Value(&kindValue),
		),
	)
	if err := form.Run(); err != nil {
		return robot.DeviceConfig{}, false, fmt.Errorf("identify device %d: %w", id, err)
	}
	if !keep {
		return robot.DeviceConfig{}, false, nil
	}

	return robot.DeviceConfig{
		Name:        robot.DeviceName(strings.TrimSpace(name)),
		ID:          id,
		Kind:        robot.Kind(kindValue),
		Calibration: existing,
	}, true, nil
}

// wiggle moves an actuator a little either way and back.
func wiggle(ctx context.Context, api *actuator.API, id int) {
	originalPos, err := api.PresentPosition(ctx, id)
	if err != nil {
		fmt.Printf("  Error reading position: %v\n", err)
		return
	}
	if err := api.SetTorqueEnable(ctx, id, 1); err != nil {
		fmt.Printf("  Error enabling torque: %v\n", err)
		return
	}

	wiggleAmount := 30
	for _, pos := range []int{originalPos + wiggleAmount, originalPos - wiggleAmount, originalPos} {
		api.SetGoalPosition(ctx, id, pos)
		time.Sleep(600 * time.Millisecond)
	}

	api.SetTorqueEnable(ctx, id, 0)
}

func beep(ctx context.Context, api *sensor.API, id int) {
	api.SetBuzzerRingingTime(ctx, id, 5)
	api.PlayBuzzerNote(ctx, id, 27)
	time.Sleep(500 * time.Millisecond)
}

// calibrate records the range of every actuator while the user moves them
// by hand.
func calibrate(chain *robot.Chain, cfg *robot.Config) error {
	actuators := cfg.Actuators()
	api := chain.Actuator()

	ctx := context.Background()
	for _, d := range actuators {
		api.SetTorqueEnable(ctx, d.ID, 0)
	}

	fmt.Println(subHeaderStyle.Render("Record range of motion"))
	fmt.Println("Move each joint to its minimum AND maximum positions.")
	fmt.Println()

	model := newCalibrationModel(api, actuators)
	for _, d := range actuators {
		pos, err := api.PresentPosition(ctx, d.ID)
		if err != nil {
			continue
		}
		model.cur[d.Name] = pos
		model.min[d.Name] = pos
		model.max[d.Name] = pos
	}

	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run calibration: %w", err)
	}

	cm := finalModel.(calibrationModel)
	for _, d := range actuators {
		if _, ok := cm.cur[d.Name]; !ok {
			continue
		}
		d.Calibration = &robot.Calibration{RangeMin: cm.min[d.Name], RangeMax: cm.max[d.Name]}
		cfg.SetDevice(d)
	}
	fmt.Println()
	fmt.Println(successStyle.Render("Actuators calibrated."))
	return nil
}

// Calibration TUI model
type calibrationModel struct {
	api       *actuator.API
	actuators []robot.DeviceConfig
	cur       map[robot.DeviceName]int
	min       map[robot.DeviceName]int
	max       map[robot.DeviceName]int
	quitting  bool
}

type tickMsg time.Time

func newCalibrationModel(api *actuator.API, actuators []robot.DeviceConfig) calibrationModel {
	return calibrationModel{
		api:       api,
		actuators: actuators,
		cur:       make(map[robot.DeviceName]int),
		min:       make(map[robot.DeviceName]int),
		max:       make(map[robot.DeviceName]int),
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m calibrationModel) Init() tea.Cmd {
	return tick()
}

func (m calibrationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		ctx := context.Background()
		for _, d := range m.actuators {
			pos, err := m.api.PresentPosition(ctx, d.ID)
			if err != nil {
				continue
			}
			if _, seen := m.cur[d.Name]; !seen {
				m.min[d.Name], m.max[d.Name] = pos, pos
			}
			m.cur[d.Name] = pos
			m.min[d.Name] = min(m.min[d.Name], pos)
			m.max[d.Name] = max(m.max[d.Name], pos)
		}
		return m, tick()
	}

	return m, nil
}

func (m calibrationModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableNameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	tableCellStyle := lipgloss.NewStyle().Padding(0, 1)
	tableCurrentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Padding(0, 1)
	tableRangeGoodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	tableRangeLowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)

	rows := make([][]string, 0, len(m.actuators))
	ranges := make([]int, 0, len(m.actuators))
	for _, d := range m.actuators {
		rangeSize := m.max[d.Name] - m.min[d.Name]
		ranges = append(ranges, rangeSize)
		rows = append(rows, []string{
			string(d.Name),
			fmt.Sprintf("%d", d.ID),
			fmt.Sprintf("%d", m.cur[d.Name]),
			fmt.Sprintf("%d", m.min[d.Name]),
			fmt.Sprintf("%d", m.max[d.Name]),
			fmt.Sprintf("%d°", actuator.AngularFromRaw(rangeSize)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Actuator", "ID", "Current", "Min", "Max", "Range").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			switch col {
			case 0:
				return tableNameStyle
			case 2:
				return tableCurrentStyle
			case 5:
				if row >= 0 && row < len(ranges) && ranges[row] > 150 {
					return tableRangeGoodStyle
				}
				return tableRangeLowStyle
			default:
				return tableCellStyle
			}
		})

	sb.WriteString(t.Render())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Press Enter when done"))

	return sb.String()
}
