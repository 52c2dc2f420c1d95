package robot

import (
	"context"
	"errors"
	"fmt"

	"github.com/gwillem/dynamixel/pkg/actuator"
	"github.com/gwillem/dynamixel/pkg/register"
	"github.com/gwillem/dynamixel/pkg/sensor"
	"github.com/gwillem/dynamixel/pkg/transport"
)

// Bus is the transport a chain runs on. *transport.Serial implements it.
type Bus interface {
	register.Transport
	Ping(ctx context.Context, id int) error
	Close() error
}

// Chain is the set of configured devices sharing one bus.
type Chain struct {
	bus       Bus
	actuators *actuator.API
	sensors   *sensor.API
	devices   []DeviceConfig
}

// Open opens the bus described by cfg.
func Open(cfg *Config) (*Chain, error) {
	bus, err := transport.Open(cfg.Transport())
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}
	return NewChain(bus, cfg.Devices), nil
}

// NewChain creates a chain over an open bus.
func NewChain(bus Bus, devices []DeviceConfig) *Chain {
	return &Chain{
		bus:       bus,
		actuators: actuator.NewWithTransport(bus),
		sensors:   sensor.NewWithTransport(bus),
		devices:   append([]DeviceConfig(nil), devices...),
	}
}

// Close closes the chain's bus connection.
func (c *Chain) Close() error {
	return c.bus.Close()
}

// Bus returns the underlying transport.
func (c *Chain) Bus() Bus {
	return c.bus
}

// Actuator returns the actuator API on the chain's bus.
func (c *Chain) Actuator() *actuator.API {
	return c.actuators
}

// Sensor returns the sensor API on the chain's bus.
func (c *Chain) Sensor() *sensor.API {
	return c.sensors
}

// Devices returns the configured devices.
func (c *Chain) Devices() []DeviceConfig {
	return c.devices
}

// Device returns the configured device called name.
func (c *Chain) Device(name DeviceName) (DeviceConfig, bool) {
	for _, d := range c.devices {
		if d.Name == name {
			return d, true
		}
	}
	return DeviceConfig{}, false
}

func (c *Chain) each(kind Kind, fn func(DeviceConfig) error) error {
	var errs []error
	for _, d := range c.devices {
		if d.Kind != kind {
			continue
		}
		if err := fn(d); err != nil {
			errs = append(errs, fmt.Errorf("%s (id %d): %w", d.Name, d.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Ping pings every device and returns the failures by name.
func (c *Chain) Ping(ctx context.Context) map[DeviceName]error {
	failed := make(map[DeviceName]error)
	for _, d := range c.devices {
		if err := c.bus.Ping(ctx, d.ID); err != nil {
			failed[d.Name] = err
		}
	}
	return failed
}

// Enable enables torque on all actuators.
func (c *Chain) Enable(ctx context.Context) error {
	return c.each(KindActuator, func(d DeviceConfig) error {
		return c.actuators.SetTorqueEnable(ctx, d.ID, 1)
	})
}

// Disable disables torque on all actuators.
func (c *Chain) Disable(ctx context.Context) error {
	return c.each(KindActuator, func(d DeviceConfig) error {
		return c.actuators.SetTorqueEnable(ctx, d.ID, 0)
	})
}

// ApplyLimits writes each calibrated range as the actuator's joint mode
// angle limits.
func (c *Chain) ApplyLimits(ctx context.Context) error {
	return c.each(KindActuator, func(d DeviceConfig) error {
		if !d.IsCalibrated() {
			return nil
		}
		cw, ccw := d.Calibration.Limits()
		return c.actuators.ToggleJointMode(ctx, d.ID, cw, ccw)
	})
}

// ReadPositions reads current positions from all actuators.
// Returns normalized positions in the range [-100, 100]. Actuators that fail
// to answer are left out and reported in the returned error.
func (c *Chain) ReadPositions(ctx context.Context) (map[DeviceName]float64, error) {
	positions := make(map[DeviceName]float64)
	err := c.each(KindActuator, func(d DeviceConfig) error {
		raw, err := c.actuators.PresentPosition(ctx, d.ID)
		if err != nil {
			return err
		}
		positions[d.Name] = d.Cal().Normalize(raw)
		return nil
	})
	return positions, err
}

// WritePositions writes target positions to the named actuators.
// Takes normalized positions in the range [-100, 100].
func (c *Chain) WritePositions(ctx context.Context, positions map[DeviceName]float64) error {
	return c.each(KindActuator, func(d DeviceConfig) error {
		norm, ok := positions[d.Name]
		if !ok {
			return nil
		}
		return c.actuators.SetGoalPosition(ctx, d.ID, d.Cal().Denormalize(norm))
	})
}

// SensorReading is one sample of a sensor module.
type SensorReading struct {
	IR    [3]int // left, center, right fire data
	Light [3]int
	Sound int
}

// ReadSensors samples every configured sensor module.
func (c *Chain) ReadSensors(ctx context.Context) (map[DeviceName]SensorReading, error) {
	readings := make(map[DeviceName]SensorReading)
	err := c.each(KindSensor, func(d DeviceConfig) error {
		var r SensorReading
		reads := []struct {
			dst *int
			fn  func(context.Context, int) (int, error)
		}{
			{&r.IR[0], c.sensors.IRLeftFireData},
			{&r.IR[1], c.sensors.IRCenterFireData},
			{&r.IR[2], c.sensors.IRRightFireData},
			{&r.Light[0], c.sensors.LightLeftData},
			{&r.Light[1], c.sensors.LightCenterData},
			{&r.Light[2], c.sensors.LightRightData},
			{&r.Sound, c.sensors.SoundData},
		}
		for _, rd := range reads {
			v, err := rd.fn(ctx, d.ID)
			if err != nil {
				return err
			}
			*rd.dst = v
		}
		readings[d.Name] = r
		return nil
	})
	return readings, err
}
