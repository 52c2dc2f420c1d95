package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/robot"
	"github.com/gwillem/dynamixel/pkg/snapshot"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// commandTimeout bounds the bus traffic of a single non-interactive command.
const commandTimeout = 10 * time.Second

// DeviceArg is the positional device ID shared by most commands.
type DeviceArg struct {
	ID int `positional-arg-name:"ID" required:"yes" description:"Device ID (0-253)"`
}

// loadConfig reads the configuration file, if there is one, and applies
// the global overrides.
func loadConfig() (*robot.Config, error) {
	cfg := &robot.Config{}
	if _, err := os.Stat(globals.Config); err == nil {
		loaded, err := robot.LoadConfigFrom(globals.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if globals.Port != "" {
		cfg.Port = globals.Port
	}
	if globals.Baud > 0 {
		cfg.BaudRate = globals.Baud
	}
	if cfg.Port == "" {
		return nil, errors.New("no serial port: pass --port or run 'dxlctl setup'")
	}
	return cfg, nil
}

func openChain() (*robot.Chain, *robot.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	chain, err := robot.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return chain, cfg, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// deviceFor picks the parameter API for id: the sensor table when forced or
// when the configuration lists id as a sensor, the actuator table
// otherwise.
func deviceFor(chain *robot.Chain, cfg *robot.Config, id int, sensor bool) snapshot.Device {
	if !sensor {
		if d, ok := cfg.ByID(id); ok && d.Kind == robot.KindSensor {
			sensor = true
		}
	}
	if sensor {
		return chain.Sensor()
	}
	return chain.Actuator()
}

// resolveName accepts parameter names the way people type them:
// "goal_position", "goal-position" and "Goal Position(L)" all name
// "goal position(l)".
func resolveName(table *ct.Registry, s string) (ct.Name, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	for _, candidate := range []ct.Name{ct.Name(name), ct.Name(name + "(l)")} {
		if _, err := table.Lookup(candidate); err == nil {
			return candidate, nil
		}
	}
	if name == "firmware version" || name == "firmware" {
		return ct.FirmwareVersion, nil
	}
	_, err := table.Lookup(ct.Name(name))
	return "", err
}

func deviceLabel(cfg *robot.Config, id int) string {
	if d, ok := cfg.ByID(id); ok {
		return fmt.Sprintf("%s (id %d)", d.Name, id)
	}
	return fmt.Sprintf("id %d", id)
}
