package robot

// MaxPosition is the highest goal or present position of an AX actuator.
const MaxPosition = 1023

// Calibration maps an actuator's usable position range onto [-100, 100].
type Calibration struct {
	// DriveMode 1 reverses the direction of normalized values.
	DriveMode int `yaml:"drive_mode,omitempty" cbor:"drive_mode,omitempty"`
	RangeMin  int `yaml:"range_min" cbor:"range_min"`
	RangeMax  int `yaml:"range_max" cbor:"range_max"`
}

// DefaultCalibration spans the whole position range.
var DefaultCalibration = Calibration{RangeMin: 0, RangeMax: MaxPosition}

// CalibrationFromLimits builds a calibration from joint mode angle limits.
// Wheel mode limits (both zero) give the default calibration.
func CalibrationFromLimits(cw, ccw int) Calibration {
	if cw == 0 && ccw == 0 {
		return DefaultCalibration
	}
	if cw > ccw {
		cw, ccw = ccw, cw
	}
	return Calibration{RangeMin: cw, RangeMax: ccw}
}

// Normalize converts a raw servo position to a normalized value in the range [-100, 100].
func (c Calibration) Normalize(raw int) float64 {
	rangeSize := float64(c.RangeMax - c.RangeMin)
	if rangeSize == 0 {
		return 0
	}
	norm := (float64(raw-c.RangeMin)/rangeSize)*200 - 100
	if c.DriveMode == 1 {
		return -norm
	}
	return norm
}

// Denormalize converts a normalized value [-100, 100] to a raw servo
// position. Values outside [-100, 100] are limited to the calibrated range.
func (c Calibration) Denormalize(norm float64) int {
	if c.DriveMode == 1 {
		norm = -norm
	}
	norm = min(max(norm, -100), 100)
	rangeSize := float64(c.RangeMax - c.RangeMin)
	return int((norm+100)/200*rangeSize) + c.RangeMin
}

// Limits returns the calibrated range as CW and CCW angle limits.
func (c Calibration) Limits() (cw, ccw int) {
	return c.RangeMin, c.RangeMax
}
