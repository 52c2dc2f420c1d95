package actuator

import (
	"context"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
)

// ModelNumber returns the model number (12 for the AX-12), read from
// address 0. The Qt DynamixelControl tool had this address and the
// firmware address swapped.
func (a *API) ModelNumber(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.ModelNumberL)
}

// FirmwareVersion returns the firmware version from address 2.
func (a *API) FirmwareVersion(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.FirmwareVersion)
}

// ID returns the ID stored on the device answering to id.
func (a *API) ID(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.ID)
}

// SetID changes the device ID, clamped to 0-254. 254 is the broadcast ID.
func (a *API) SetID(ctx context.Context, id, newID int) error {
	return a.set(ctx, id, ct.ID, clamp(newID, 0, 254))
}

// BaudRate returns the baud number; the bus speed is 2000000/(n+1) bps.
func (a *API) BaudRate(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.BaudRate)
}

// SetBaudRate sets the baud number, clamped to 0-254.
func (a *API) SetBaudRate(ctx context.Context, id, baud int) error {
	return a.set(ctx, id, ct.BaudRate, clamp(baud, 0, 254))
}

// ReturnDelayTime returns the status packet delay in units of 2 usec.
func (a *API) ReturnDelayTime(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.ReturnDelayTime)
}

// SetReturnDelayTime sets the status packet delay, clamped to 0-254.
func (a *API) SetReturnDelayTime(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.ReturnDelayTime, clamp(v, 0, 254))
}

// CWAngleLimit returns the clockwise angle limit. Both limits at zero
// select wheel mode.
func (a *API) CWAngleLimit(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.CWAngleLimitL)
}

// SetCWAngleLimit sets the clockwise angle limit. Negative values become 0;
// there is no upper bound.
func (a *API) SetCWAngleLimit(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.CWAngleLimitL, max(v, 0))
}

// CCWAngleLimit returns the counter-clockwise angle limit.
func (a *API) CCWAngleLimit(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.CCWAngleLimitL)
}

// SetCCWAngleLimit sets the counter-clockwise angle limit. Negative values
// become 0; there is no upper bound.
func (a *API) SetCCWAngleLimit(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.CCWAngleLimitL, max(v, 0))
}

// HighestLimitTemperature returns the overheating threshold in degrees C.
func (a *API) HighestLimitTemperature(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.HighestLimitTemp)
}

// SetHighestLimitTemperature writes v unchanged. The factory value is 70.
func (a *API) SetHighestLimitTemperature(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.HighestLimitTemp, v)
}

// LowestLimitVoltage returns the lower bound of the operating voltage in
// units of 0.1V.
func (a *API) LowestLimitVoltage(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.LowestLimitVoltage)
}

// SetLowestLimitVoltage sets the lower voltage bound, clamped to 50-250.
func (a *API) SetLowestLimitVoltage(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.LowestLimitVoltage, clamp(v, 50, 250))
}

// HighestLimitVoltage returns the upper bound of the operating voltage in
// units of 0.1V.
func (a *API) HighestLimitVoltage(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.HighestLimitVoltage)
}

// SetHighestLimitVoltage sets the upper voltage bound, clamped to 50-250.
func (a *API) SetHighestLimitVoltage(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.HighestLimitVoltage, clamp(v, 50, 250))
}

// MaxTorque returns the power-on torque limit, 0-1023.
func (a *API) MaxTorque(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.MaxTorqueL)
}

// SetMaxTorque sets the power-on torque limit, clamped to 0-1023.
func (a *API) SetMaxTorque(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.MaxTorqueL, clamp(v, 0, 1023))
}

// StatusReturnLevel returns when the device answers: 0 only PING, 1 also
// READ, 2 every instruction.
func (a *API) StatusReturnLevel(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.StatusReturnLevel)
}

// SetStatusReturnLevel sets the status return level. Values outside 0-3
// are dropped without a write.
func (a *API) SetStatusReturnLevel(ctx context.Context, id, v int) error {
	if v < 0 || v > 3 {
		drop(id, ct.StatusReturnLevel, v)
		return nil
	}
	return a.set(ctx, id, ct.StatusReturnLevel, v)
}

// AlarmLED returns the alarm LED flag.
func (a *API) AlarmLED(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.AlarmLED)
}

// SetAlarmLED accepts 0 (off) or 1 (on); other values are dropped.
func (a *API) SetAlarmLED(ctx context.Context, id, v int) error {
	if !isFlag(v) {
		drop(id, ct.AlarmLED, v)
		return nil
	}
	return a.set(ctx, id, ct.AlarmLED, v)
}

// AlarmShutdown returns the shutdown bitmask. Bits follow
// protocol.ErrorBits: a set bit turns torque off when that error occurs.
func (a *API) AlarmShutdown(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.AlarmShutdown)
}

// SetAlarmShutdown writes the bitmask unchanged.
func (a *API) SetAlarmShutdown(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.AlarmShutdown, v)
}

func (a *API) TorqueEnable(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.TorqueEnable)
}

// SetTorqueEnable accepts 0 (off) or 1 (on); other values are dropped.
func (a *API) SetTorqueEnable(ctx context.Context, id, v int) error {
	if !isFlag(v) {
		drop(id, ct.TorqueEnable, v)
		return nil
	}
	return a.set(ctx, id, ct.TorqueEnable, v)
}

// LED returns the LED bitmask.
func (a *API) LED(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.LED)
}

// SetLED writes the LED bitmask unchanged.
func (a *API) SetLED(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.LED, v)
}

// CWComplianceMargin returns the clockwise dead band around the goal.
func (a *API) CWComplianceMargin(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.CWComplianceMargin)
}

// SetCWComplianceMargin sets the clockwise dead band, clamped to 0-255.
func (a *API) SetCWComplianceMargin(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.CWComplianceMargin, clamp(v, 0, 255))
}

// CCWComplianceMargin returns the counter-clockwise dead band.
func (a *API) CCWComplianceMargin(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.CCWComplianceMargin)
}

// SetCCWComplianceMargin sets the counter-clockwise dead band, clamped to
// 0-255.
func (a *API) SetCCWComplianceMargin(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.CCWComplianceMargin, clamp(v, 0, 255))
}

// CWComplianceSlope returns the clockwise torque slope near the goal. The
// device uses the levels 2, 4, 8, 16, 32, 64 and 128.
func (a *API) CWComplianceSlope(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.CWComplianceSlope)
}

// SetCWComplianceSlope writes the clockwise slope. Negative values become 0
// and values above 255 become 254.
func (a *API) SetCWComplianceSlope(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.CWComplianceSlope, slope(v))
}

func (a *API) CCWComplianceSlope(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.CCWComplianceSlope)
}

// SetCCWComplianceSlope writes the counter-clockwise slope with the same
// bounds as SetCWComplianceSlope.
func (a *API) SetCCWComplianceSlope(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.CCWComplianceSlope, slope(v))
}

func slope(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 254
	}
	return v
}

// GoalPosition returns the goal position, 0-1023 in steps of 0.29 degrees.
func (a *API) GoalPosition(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.GoalPositionL)
}

// SetGoalPosition sets the goal position, clamped to 0-1023.
func (a *API) SetGoalPosition(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.GoalPositionL, clamp(v, 0, 1023))
}

// MovingSpeed returns the moving speed. In joint mode it is 0-1023 in units
// of 0.111rpm; in wheel mode 0-1023 turns CCW and 1024-2047 turns CW, in
// units of 0.1% output.
func (a *API) MovingSpeed(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.MovingSpeedL)
}

// SetMovingSpeed writes the moving speed. Negative values become 0. Other
// values are raised to at least 2047 in wheel mode and 1023 in joint mode,
// which reads the current angle limits first. The floor never caps a value.
func (a *API) SetMovingSpeed(ctx context.Context, id, v int) error {
	if v < 0 {
		v = 0
	} else {
		mode, err := a.MovementMode(ctx, id)
		if err != nil {
			return err
		}
		if mode == Wheel {
			v = max(v, 2047)
		} else {
			v = max(v, 1023)
		}
	}
	return a.set(ctx, id, ct.MovingSpeedL, v)
}

// TorqueLimit returns the running torque limit, 0-1023.
func (a *API) TorqueLimit(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.TorqueLimitL)
}

// SetTorqueLimit sets the running torque limit, clamped to 0-1023.
func (a *API) SetTorqueLimit(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.TorqueLimitL, clamp(v, 0, 1023))
}

// PresentPosition returns the current position, 0-1023.
func (a *API) PresentPosition(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.PresentPositionL)
}

// PresentSpeed returns the current speed; bit 10 is the direction.
func (a *API) PresentSpeed(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.PresentSpeedL)
}

// PresentLoad returns the current load; bit 10 is the direction.
func (a *API) PresentLoad(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.PresentLoadL)
}

// PresentVoltage returns the supply voltage in units of 0.1V from address
// 42. The Qt DynamixelControl tool looked up the truncated key "present ",
// which is not in the table and fails with ErrUnknownParameter.
func (a *API) PresentVoltage(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.PresentVoltage)
}

// PresentTemperature returns the internal temperature in degrees C.
func (a *API) PresentTemperature(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.PresentTemperature)
}

// Registered returns 1 while a REG_WRITE instruction awaits ACTION.
func (a *API) Registered(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.Registered)
}

// Moving returns 1 while the actuator moves under its own power.
func (a *API) Moving(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.Moving)
}

// Lock returns 1 when the EEPROM area is locked.
func (a *API) Lock(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.Lock)
}

// SetLock accepts 1 (lock) or 0; other values are dropped. Once locked the
// EEPROM area stays read-only until the device is power cycled.
func (a *API) SetLock(ctx context.Context, id, v int) error {
	if !isFlag(v) {
		drop(id, ct.Lock, v)
		return nil
	}
	return a.set(ctx, id, ct.Lock, v)
}

// Punch returns the minimum drive current applied outside the compliance
// margin.
func (a *API) Punch(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.PunchL)
}

// SetPunch sets the punch, clamped to 32-1023.
func (a *API) SetPunch(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.PunchL, clamp(v, 32, 1023))
}
