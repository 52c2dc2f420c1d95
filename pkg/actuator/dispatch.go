package actuator

import (
	"context"
	"fmt"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
)

type param struct {
	get func(*API, context.Context, int) (int, error)
	set func(*API, context.Context, int, int) error
}

// params routes by-name access through the typed methods so value policies
// apply to the CLI and snapshots as well.
var params = map[ct.Name]param{
	ct.ModelNumberL:        {get: (*API).ModelNumber},
	ct.FirmwareVersion:     {get: (*API).FirmwareVersion},
	ct.ID:                  {(*API).ID, (*API).SetID},
	ct.BaudRate:            {(*API).BaudRate, (*API).SetBaudRate},
	ct.ReturnDelayTime:     {(*API).ReturnDelayTime, (*API).SetReturnDelayTime},
	ct.CWAngleLimitL:       {(*API).CWAngleLimit, (*API).SetCWAngleLimit},
	ct.CCWAngleLimitL:      {(*API).CCWAngleLimit, (*API).SetCCWAngleLimit},
	ct.HighestLimitTemp:    {(*API).HighestLimitTemperature, (*API).SetHighestLimitTemperature},
	ct.LowestLimitVoltage:  {(*API).LowestLimitVoltage, (*API).SetLowestLimitVoltage},
	ct.HighestLimitVoltage: {(*API).HighestLimitVoltage, (*API).SetHighestLimitVoltage},
	ct.MaxTorqueL:          {(*API).MaxTorque, (*API).SetMaxTorque},
	ct.StatusReturnLevel:   {(*API).StatusReturnLevel, (*API).SetStatusReturnLevel},
	ct.AlarmLED:            {(*API).AlarmLED, (*API).SetAlarmLED},
	ct.AlarmShutdown:       {(*API).AlarmShutdown, (*API).SetAlarmShutdown},
	ct.TorqueEnable:        {(*API).TorqueEnable, (*API).SetTorqueEnable},
	ct.LED:                 {(*API).LED, (*API).SetLED},
	ct.CWComplianceMargin:  {(*API).CWComplianceMargin, (*API).SetCWComplianceMargin},
	ct.CCWComplianceMargin: {(*API).CCWComplianceMargin, (*API).SetCCWComplianceMargin},
	ct.CWComplianceSlope:   {(*API).CWComplianceSlope, (*API).SetCWComplianceSlope},
	ct.CCWComplianceSlope:  {(*API).CCWComplianceSlope, (*API).SetCCWComplianceSlope},
	ct.GoalPositionL:       {(*API).GoalPosition, (*API).SetGoalPosition},
	ct.MovingSpeedL:        {(*API).MovingSpeed, (*API).SetMovingSpeed},
	ct.TorqueLimitL:        {(*API).TorqueLimit, (*API).SetTorqueLimit},
	ct.PresentPositionL:    {get: (*API).PresentPosition},
	ct.PresentSpeedL:       {get: (*API).PresentSpeed},
	ct.PresentLoadL:        {get: (*API).PresentLoad},
	ct.PresentVoltage:      {get: (*API).PresentVoltage},
	ct.PresentTemperature:  {get: (*API).PresentTemperature},
	ct.Registered:          {get: (*API).Registered},
	ct.Moving:              {get: (*API).Moving},
	ct.Lock:                {(*API).Lock, (*API).SetLock},
	ct.PunchL:              {(*API).Punch, (*API).SetPunch},
}

// Get reads a parameter by name. Names without a typed getter, such as the
// "(h)" halves of word values, are read raw.
func (a *API) Get(ctx context.Context, id int, name ct.Name) (int, error) {
	if p, ok := params[name]; ok {
		return p.get(a, ctx, id)
	}
	return a.acc.ReadNamed(ctx, id, name)
}

// Set writes a parameter by name through its typed setter, so the same
// clamping and rejection rules apply.
func (a *API) Set(ctx context.Context, id int, name ct.Name, value int) error {
	if _, err := a.acc.Table().Lookup(name); err != nil {
		return err
	}
	p, ok := params[name]
	if !ok || p.set == nil {
		return fmt.Errorf("%w: %q", ct.ErrReadOnly, name)
	}
	return p.set(a, ctx, id, value)
}

// Writable reports whether Set accepts name.
func Writable(name ct.Name) bool {
	p, ok := params[name]
	return ok && p.set != nil
}
