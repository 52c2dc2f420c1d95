package sensor

import (
	"context"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
)

// ModelNumber returns the model number word at address 0.
func (a *API) ModelNumber(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.ModelNumberL)
}

func (a *API) FirmwareVersion(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.FirmwareVersion)
}

func (a *API) ID(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.ID)
}

// SetID changes the module ID, clamped to 0-254.
func (a *API) SetID(ctx context.Context, id, newID int) error {
	return a.setClamped(ctx, id, ct.ID, newID, 0, 254)
}

func (a *API) BaudRate(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.BaudRate)
}

// SetBaudRate sets the baud number, clamped to 0-254.
func (a *API) SetBaudRate(ctx context.Context, id, baud int) error {
	return a.setClamped(ctx, id, ct.BaudRate, baud, 0, 254)
}

func (a *API) ReturnDelayTime(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.ReturnDelayTime)
}

// SetReturnDelayTime sets the status delay in units of 2 usec, clamped to
// 0-254.
func (a *API) SetReturnDelayTime(ctx context.Context, id, v int) error {
	return a.setClamped(ctx, id, ct.ReturnDelayTime, v, 0, 254)
}

func (a *API) StatusReturnLevel(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.StatusReturnLevel)
}

// SetStatusReturnLevel drops values outside 0-3.
func (a *API) SetStatusReturnLevel(ctx context.Context, id, v int) error {
	if v < 0 || v > 3 {
		return dropped(id, ct.StatusReturnLevel, v)
	}
	return a.set(ctx, id, ct.StatusReturnLevel, v)
}

// IRLeftFireData returns the reflected infrared on the left, 0-255. Higher
// means closer.
func (a *API) IRLeftFireData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.IRLeftFireData)
}

func (a *API) IRCenterFireData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.IRCenterFireData)
}

func (a *API) IRRightFireData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.IRRightFireData)
}

// LightLeftData returns the ambient infrared on the left, 0-255. Higher
// means brighter.
func (a *API) LightLeftData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.LightLeftData)
}

func (a *API) LightCenterData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.LightCenterData)
}

func (a *API) LightRightData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.LightRightData)
}

// IRObstacleDetected returns a bit per side set when the fire data exceeds
// the obstacle compare value.
func (a *API) IRObstacleDetected(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.IRObstacleDetected)
}

// LightDetected returns a bit per side set when the light data exceeds the
// light compare value.
func (a *API) LightDetected(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.LightDetected)
}

// SoundData returns the microphone level. Silence reads 127-128; louder
// sound moves towards 0 or 255.
func (a *API) SoundData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.SoundData)
}

// SoundDataMaxHold returns the loudest level seen since the last reset.
func (a *API) SoundDataMaxHold(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.SoundDataMaxHold)
}

func (a *API) SetSoundDataMaxHold(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.SoundDataMaxHold, v)
}

func (a *API) SoundDetectedCount(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.SoundDetectedCount)
}

func (a *API) SetSoundDetectedCount(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.SoundDetectedCount, v)
}

// SoundDetectedTime returns the timestamp of the last detected sound.
func (a *API) SoundDetectedTime(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.SoundDetectedTimeL)
}

func (a *API) SetSoundDetectedTime(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.SoundDetectedTimeL, v)
}

// BuzzerData0 returns the buzzer note.
func (a *API) BuzzerData0(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.BuzzerData0)
}

func (a *API) SetBuzzerData0(ctx context.Context, id, note int) error {
	return a.set(ctx, id, ct.BuzzerData0, note)
}

// BuzzerData1 returns the buzzer ringing time in units of 0.1s.
func (a *API) BuzzerData1(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.BuzzerData1)
}

func (a *API) SetBuzzerData1(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.BuzzerData1, v)
}

func (a *API) Registered(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.Registered)
}

func (a *API) SetRegistered(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.Registered, v)
}

// IRRemoconArrived returns the number of bytes received over the IR link.
func (a *API) IRRemoconArrived(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.IRRemoconArrived)
}

func (a *API) Lock(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.Lock)
}

// SetLock accepts 0 or 1; other values are dropped.
func (a *API) SetLock(ctx context.Context, id, v int) error {
	if v != 0 && v != 1 {
		return dropped(id, ct.Lock, v)
	}
	return a.set(ctx, id, ct.Lock, v)
}

// RemoconRXData returns the word last received over the IR link.
func (a *API) RemoconRXData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.RemoconRXData0)
}

func (a *API) RemoconTXData(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.RemoconTXData0)
}

// SetRemoconTXData sends a word over the IR link.
func (a *API) SetRemoconTXData(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.RemoconTXData0, v)
}

func (a *API) IRObstacleDetectCompare(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.IRObstacleDetectCompare)
}

// SetIRObstacleDetectCompare sets the fire data threshold for obstacle
// detection.
func (a *API) SetIRObstacleDetectCompare(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.IRObstacleDetectCompare, v)
}

func (a *API) LightDetectCompare(ctx context.Context, id int) (int, error) {
	return a.get(ctx, id, ct.LightDetectCompare)
}

func (a *API) SetLightDetectCompare(ctx context.Context, id, v int) error {
	return a.set(ctx, id, ct.LightDetectCompare, v)
}
