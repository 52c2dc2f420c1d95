package controltable

// Actuator (AX-12 class) parameter names. Two-byte values are addressed by
// their low byte, the "(l)" name.
const (
	ModelNumberL        Name = "model number(l)"
	ModelNumberH        Name = "model number(h)"
	FirmwareVersion     Name = "version of firmware"
	ID                  Name = "id"
	BaudRate            Name = "baud rate"
	ReturnDelayTime     Name = "return delay time"
	CWAngleLimitL       Name = "cw angle limit(l)"
	CWAngleLimitH       Name = "cw angle limit(h)"
	CCWAngleLimitL      Name = "ccw angle limit(l)"
	CCWAngleLimitH      Name = "ccw angle limit(h)"
	HighestLimitTemp    Name = "the highest limit temperature"
	LowestLimitVoltage  Name = "the lowest limit voltage"
	HighestLimitVoltage Name = "the highest limit voltage"
	MaxTorqueL          Name = "max torque(l)"
	MaxTorqueH          Name = "max torque(h)"
	StatusReturnLevel   Name = "status return level"
	AlarmLED            Name = "alarm led"
	AlarmShutdown       Name = "alarm shutdown"
	TorqueEnable        Name = "torque enable"
	LED                 Name = "led"
	CWComplianceMargin  Name = "cw compliance margin"
	CCWComplianceMargin Name = "ccw compliance margin"
	CWComplianceSlope   Name = "cw compliance slope"
	CCWComplianceSlope  Name = "ccw compliance slope"
	GoalPositionL       Name = "goal position(l)"
	GoalPositionH       Name = "goal position(h)"
	MovingSpeedL        Name = "moving speed(l)"
	MovingSpeedH        Name = "moving speed(h)"
	TorqueLimitL        Name = "torque limit(l)"
	TorqueLimitH        Name = "torque limit(h)"
	PresentPositionL    Name = "present position(l)"
	PresentPositionH    Name = "present position(h)"
	PresentSpeedL       Name = "present speed(l)"
	PresentSpeedH       Name = "present speed(h)"
	PresentLoadL        Name = "present load(l)"
	PresentLoadH        Name = "present load(h)"
	PresentVoltage      Name = "present voltage"
	PresentTemperature  Name = "present temperature"
	Registered          Name = "registered"
	Moving              Name = "moving"
	Lock                Name = "lock"
	PunchL              Name = "punch(l)"
	PunchH              Name = "punch(h)"
)

// EEPROMEnd is the first address past the non-volatile area. Values below it
// survive a power cycle and are frozen while the lock flag is set.
const EEPROMEnd Address = 24

// actuatorSingleByte lists the addresses of the actuator table that hold one
// byte. Everything else is a word.
var actuatorSingleByte = []Address{2, 3, 4, 5, 11, 12, 13, 16, 17, 18, 24, 25, 26, 27, 28, 29, 42, 43, 44, 46, 47}

var actuatorLayout = []slot{
	{ModelNumberL, 0, ReadOnly},
	{ModelNumberH, 1, ReadOnly},
	{FirmwareVersion, 2, ReadOnly},
	{ID, 3, ReadWrite},
	{BaudRate, 4, ReadWrite},
	{ReturnDelayTime, 5, ReadWrite},
	{CWAngleLimitL, 6, ReadWrite},
	{CWAngleLimitH, 7, ReadWrite},
	{CCWAngleLimitL, 8, ReadWrite},
	{CCWAngleLimitH, 9, ReadWrite},
	{HighestLimitTemp, 11, ReadWrite},
	{LowestLimitVoltage, 12, ReadWrite},
	{HighestLimitVoltage, 13, ReadWrite},
	{MaxTorqueL, 14, ReadWrite},
	{MaxTorqueH, 15, ReadWrite},
	{StatusReturnLevel, 16, ReadWrite},
	{AlarmLED, 17, ReadWrite},
	{AlarmShutdown, 18, ReadWrite},
	{TorqueEnable, 24, ReadWrite},
	{LED, 25, ReadWrite},
	{CWComplianceMargin, 26, ReadWrite},
	{CCWComplianceMargin, 27, ReadWrite},
	{CWComplianceSlope, 28, ReadWrite},
	{CCWComplianceSlope, 29, ReadWrite},
	{GoalPositionL, 30, ReadWrite},
	{GoalPositionH, 31, ReadWrite},
	{MovingSpeedL, 32, ReadWrite},
	{MovingSpeedH, 33, ReadWrite},
	{TorqueLimitL, 34, ReadWrite},
	{TorqueLimitH, 35, ReadWrite},
	{PresentPositionL, 36, ReadOnly},
	{PresentPositionH, 37, ReadOnly},
	{PresentSpeedL, 38, ReadOnly},
	{PresentSpeedH, 39, ReadOnly},
	{PresentLoadL, 40, ReadOnly},
	{PresentLoadH, 41, ReadOnly},
	{PresentVoltage, 42, ReadOnly},
	{PresentTemperature, 43, ReadOnly},
	{Registered, 44, ReadOnly},
	{Moving, 46, ReadOnly},
	{Lock, 47, ReadWrite},
	{PunchL, 48, ReadWrite},
	{PunchH, 49, ReadWrite},
}

// Actuator returns the control table of AX-12 class actuators.
func Actuator() *Registry {
	return build("AX-12", actuatorLayout, actuatorSingleByte)
}

type slot struct {
	name   Name
	addr   Address
	access Access
}

func build(model string, layout []slot, singleByte []Address) *Registry {
	isByte := make(map[Address]bool, len(singleByte))
	for _, a := range singleByte {
		isByte[a] = true
	}
	entries := make([]Entry, 0, len(layout))
	for _, l := range layout {
		w := Word
		if isByte[l.addr] {
			w = Byte
		}
		entries = append(entries, Entry{Name: l.name, Address: l.addr, Width: w, Access: l.access})
	}
	return NewRegistry(model, entries)
}
