package actuator

import (
	"context"
	"fmt"
)

// Mode is the movement mode implied by the angle limits. It is never stored
// on the device; it is derived from the CW and CCW limits on every read.
type Mode int

const (
	// Wheel is continuous rotation: both angle limits are zero.
	Wheel Mode = iota
	// Joint is bounded servo motion between the angle limits.
	Joint
)

func (m Mode) String() string {
	switch m {
	case Wheel:
		return "wheel"
	case Joint:
		return "joint"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "wheel" or "joint".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "wheel":
		return Wheel, nil
	case "joint":
		return Joint, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// DegreesPerStep is the angular size of one position step.
const DegreesPerStep = 0.29

// AngularFromRaw converts a position to whole degrees, truncating.
func AngularFromRaw(v int) int {
	return int(float64(v) * DegreesPerStep)
}

// RawFromAngular converts whole degrees to a position, truncating. A round
// trip through AngularFromRaw may lose one degree, e.g. 100 -> 344 -> 99.
func RawFromAngular(deg int) int {
	return int(float64(deg) / DegreesPerStep)
}

// MovementMode reports Wheel when both angle limits read zero, Joint
// otherwise. The CCW limit is only read when the CW limit is zero.
func (a *API) MovementMode(ctx context.Context, id int) (Mode, error) {
	cw, err := a.CWAngleLimit(ctx, id)
	if err != nil {
		return 0, err
	}
	if cw != 0 {
		return Joint, nil
	}
	ccw, err := a.CCWAngleLimit(ctx, id)
	if err != nil {
		return 0, err
	}
	if ccw != 0 {
		return Joint, nil
	}
	return Wheel, nil
}

// ToggleWheelMode zeroes both angle limits. The two writes are separate
// round trips; a failure between them leaves only the CW limit changed.
func (a *API) ToggleWheelMode(ctx context.Context, id int) error {
	if err := a.SetCWAngleLimit(ctx, id, 0); err != nil {
		return err
	}
	return a.SetCCWAngleLimit(ctx, id, 0)
}

// ToggleJointMode sets both angle limits.
func (a *API) ToggleJointMode(ctx context.Context, id, cw, ccw int) error {
	if err := a.SetCWAngleLimit(ctx, id, cw); err != nil {
		return err
	}
	return a.SetCCWAngleLimit(ctx, id, ccw)
}

// TorqueEnableSwitch turns torque off when it is on and on when it is off.
func (a *API) TorqueEnableSwitch(ctx context.Context, id int) error {
	status, err := a.TorqueEnable(ctx, id)
	if err != nil {
		return err
	}
	if status > 0 {
		return a.SetTorqueEnable(ctx, id, 0)
	}
	return a.SetTorqueEnable(ctx, id, 1)
}

// IsInstructionRegistered reports whether a REG_WRITE is pending.
func (a *API) IsInstructionRegistered(ctx context.Context, id int) (bool, error) {
	v, err := a.Registered(ctx, id)
	return v > 0, err
}

// IsMoving reports whether the actuator is moving.
func (a *API) IsMoving(ctx context.Context, id int) (bool, error) {
	v, err := a.Moving(ctx, id)
	return v > 0, err
}

// IsEEPROMLocked reports whether the EEPROM area is locked.
func (a *API) IsEEPROMLocked(ctx context.Context, id int) (bool, error) {
	v, err := a.Lock(ctx, id)
	return v > 0, err
}

// GoalPositionAngular returns the goal position in degrees.
func (a *API) GoalPositionAngular(ctx context.Context, id int) (int, error) {
	v, err := a.GoalPosition(ctx, id)
	return AngularFromRaw(v), err
}

// SetGoalPositionAngular sets the goal position from degrees. The converted
// position is clamped like SetGoalPosition, so anything above 296 degrees
// lands on 1023.
func (a *API) SetGoalPositionAngular(ctx context.Context, id, deg int) error {
	return a.SetGoalPosition(ctx, id, RawFromAngular(deg))
}

// PresentPositionAngular returns the present position in degrees.
func (a *API) PresentPositionAngular(ctx context.Context, id int) (int, error) {
	v, err := a.PresentPosition(ctx, id)
	return AngularFromRaw(v), err
}
