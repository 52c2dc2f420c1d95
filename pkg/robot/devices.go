// Package robot groups the Dynamixel devices on one bus into a named chain
// and keeps their configuration and calibration.
package robot

import "fmt"

// DeviceName identifies a device in the configuration, e.g. "pan" or
// "head_sensor".
type DeviceName string

// Kind selects the control table a device is driven with.
type Kind string

const (
	KindActuator Kind = "actuator"
	KindSensor   Kind = "sensor"
)

// ParseKind parses "actuator" or "sensor". An empty string means actuator.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindActuator:
		return KindActuator, nil
	case KindSensor:
		return KindSensor, nil
	}
	return "", fmt.Errorf("unknown device kind %q", s)
}

// DeviceConfig describes one device on the bus.
type DeviceConfig struct {
	Name        DeviceName   `yaml:"name"`
	ID          int          `yaml:"id"`
	Kind        Kind         `yaml:"kind"`
	Calibration *Calibration `yaml:"calibration,omitempty"`
}

// IsCalibrated returns true if the device has calibration data.
func (d DeviceConfig) IsCalibrated() bool {
	return d.Calibration != nil
}

// Cal returns the device calibration, or the full position range when the
// device has none.
func (d DeviceConfig) Cal() Calibration {
	if d.Calibration != nil {
		return *d.Calibration
	}
	return DefaultCalibration
}
