package controltable

// Sensor module (AX-S1 class) parameter names. The header fields (model
// number, firmware, id, baud rate, return delay, status return level,
// registered, lock) share their names with the actuator table.
const (
	IRLeftFireData          Name = "ir left fire data"
	IRCenterFireData        Name = "ir center fire data"
	IRRightFireData         Name = "ir right fire data"
	LightLeftData           Name = "light left data"
	LightCenterData         Name = "light center data"
	LightRightData          Name = "light right data"
	IRObstacleDetected      Name = "ir obstacle detected"
	LightDetected           Name = "light detected"
	SoundData               Name = "sound data"
	SoundDataMaxHold        Name = "sound data max hold"
	SoundDetectedCount      Name = "sound detected count"
	SoundDetectedTimeL      Name = "sound detected time(l)"
	SoundDetectedTimeH      Name = "sound detected time(h)"
	BuzzerData0             Name = "buzzer data 0"
	BuzzerData1             Name = "buzzer data 1"
	IRRemoconArrived        Name = "ir remocon arrived"
	RemoconRXData0          Name = "remocon rx data 0"
	RemoconRXData1          Name = "remocon rx data 1"
	RemoconTXData0          Name = "remocon tx data 0"
	RemoconTXData1          Name = "remocon tx data 1"
	IRObstacleDetectCompare Name = "ir obstacle detect comparerd"
	LightDetectCompare      Name = "light detect comparerd"
)

var sensorSingleByte = []Address{2, 3, 4, 5, 16, 26, 27, 28, 29, 30, 31, 32, 33, 35, 36, 37, 40, 41, 44, 46, 47, 52, 53}

var sensorLayout = []slot{
	{ModelNumberL, 0, ReadOnly},
	{ModelNumberH, 1, ReadOnly},
	{FirmwareVersion, 2, ReadOnly},
	{ID, 3, ReadWrite},
	{BaudRate, 4, ReadWrite},
	{ReturnDelayTime, 5, ReadWrite},
	{StatusReturnLevel, 16, ReadWrite},
	{IRLeftFireData, 26, ReadOnly},
	{IRCenterFireData, 27, ReadOnly},
	{IRRightFireData, 28, ReadOnly},
	{LightLeftData, 29, ReadOnly},
	{LightCenterData, 30, ReadOnly},
	{LightRightData, 31, ReadOnly},
	{IRObstacleDetected, 32, ReadOnly},
	{LightDetected, 33, ReadOnly},
	{SoundData, 35, ReadOnly},
	{SoundDataMaxHold, 36, ReadWrite},
	{SoundDetectedCount, 37, ReadWrite},
	{SoundDetectedTimeL, 38, ReadWrite},
	{SoundDetectedTimeH, 39, ReadWrite},
	{BuzzerData0, 40, ReadWrite},
	{BuzzerData1, 41, ReadWrite},
	{Registered, 44, ReadWrite},
	{IRRemoconArrived, 46, ReadOnly},
	{Lock, 47, ReadWrite},
	{RemoconRXData0, 48, ReadOnly},
	{RemoconRXData1, 49, ReadOnly},
	{RemoconTXData0, 50, ReadWrite},
	{RemoconTXData1, 51, ReadWrite},
	{IRObstacleDetectCompare, 52, ReadWrite},
	{LightDetectCompare, 53, ReadWrite},
}

// Sensor returns the control table of AX-S1 class sensor modules.
func Sensor() *Registry {
	return build("AX-S1", sensorLayout, sensorSingleByte)
}
