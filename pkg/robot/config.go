package robot

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gwillem/dynamixel/pkg/transport"
)

const DefaultConfigFile = "dynamixel.yaml"

// Config holds the bus settings and the devices on it.
type Config struct {
	Port     string        `yaml:"port"`
	BaudRate int           `yaml:"baud_rate,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`

	// Retries and StatusReturnLevel default to 1 and 2 when unset. Zero is
	// a valid setting for both.
	Retries           *int `yaml:"retries,omitempty"`
	StatusReturnLevel *int `yaml:"status_return_level,omitempty"`

	Devices []DeviceConfig `yaml:"devices"`
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range cfg.Devices {
		kind, err := ParseKind(string(cfg.Devices[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("device %q: %w", cfg.Devices[i].Name, err)
		}
		cfg.Devices[i].Kind = kind
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}

// Validate checks that device names and IDs are unique and addressable.
func (c *Config) Validate() error {
	var errs []error
	names := make(map[DeviceName]bool)
	ids := make(map[int]bool)
	for _, d := range c.Devices {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("device with id %d has no name", d.ID))
		}
		if names[d.Name] {
			errs = append(errs, fmt.Errorf("duplicate device name %q", d.Name))
		}
		if ids[d.ID] {
			errs = append(errs, fmt.Errorf("duplicate device id %d", d.ID))
		}
		if d.ID < 0 || d.ID > 253 {
			errs = append(errs, fmt.Errorf("device %q: id %d out of range 0-253", d.Name, d.ID))
		}
		if d.Kind != KindActuator && d.Kind != KindSensor {
			errs = append(errs, fmt.Errorf("device %q: unknown kind %q", d.Name, d.Kind))
		}
		names[d.Name] = true
		ids[d.ID] = true
	}
	return errors.Join(errs...)
}

// Transport returns the bus settings, with factory defaults for anything
// left unset.
func (c *Config) Transport() transport.Config {
	tc := transport.DefaultConfig(c.Port)
	if c.BaudRate > 0 {
		tc.BaudRate = c.BaudRate
	}
	if c.Timeout > 0 {
		tc.Timeout = c.Timeout
	}
	if c.Retries != nil {
		tc.Retries = *c.Retries
	}
	if c.StatusReturnLevel != nil {
		tc.StatusReturnLevel = *c.StatusReturnLevel
	}
	return tc
}

// Device returns the device called name.
func (c *Config) Device(name DeviceName) (DeviceConfig, bool) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return DeviceConfig{}, false
}

// ByID returns the device with the given bus ID.
func (c *Config) ByID(id int) (DeviceConfig, bool) {
	for _, d := range c.Devices {
		if d.ID == id {
			return d, true
		}
	}
	return DeviceConfig{}, false
}

// Actuators returns the actuator devices in configuration order.
func (c *Config) Actuators() []DeviceConfig {
	return c.ofKind(KindActuator)
}

// Sensors returns the sensor devices in configuration order.
func (c *Config) Sensors() []DeviceConfig {
	return c.ofKind(KindSensor)
}

func (c *Config) ofKind(k Kind) []DeviceConfig {
	var out []DeviceConfig
	for _, d := range c.Devices {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// SetDevice adds d or replaces the device with the same name.
func (c *Config) SetDevice(d DeviceConfig) {
	for i := range c.Devices {
		if c.Devices[i].Name == d.Name {
			c.Devices[i] = d
			return
		}
	}
	c.Devices = append(c.Devices, d)
}
