package sensor

import (
	"context"
	"fmt"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
)

type setter func(*API, context.Context, int, int) error

var setters = map[ct.Name]setter{
	ct.ID:                      (*API).SetID,
	ct.BaudRate:                (*API).SetBaudRate,
	ct.ReturnDelayTime:         (*API).SetReturnDelayTime,
	ct.StatusReturnLevel:       (*API).SetStatusReturnLevel,
	ct.SoundDataMaxHold:        (*API).SetSoundDataMaxHold,
	ct.SoundDetectedCount:      (*API).SetSoundDetectedCount,
	ct.SoundDetectedTimeL:      (*API).SetSoundDetectedTime,
	ct.BuzzerData0:             (*API).SetBuzzerData0,
	ct.BuzzerData1:             (*API).SetBuzzerData1,
	ct.Registered:              (*API).SetRegistered,
	ct.Lock:                    (*API).SetLock,
	ct.RemoconTXData0:          (*API).SetRemoconTXData,
	ct.IRObstacleDetectCompare: (*API).SetIRObstacleDetectCompare,
	ct.LightDetectCompare:      (*API).SetLightDetectCompare,
}

// Get reads a parameter by name. Every sensor getter is a plain read, so
// this goes straight to the accessor.
func (a *API) Get(ctx context.Context, id int, name ct.Name) (int, error) {
	return a.acc.ReadNamed(ctx, id, name)
}

// Set writes a parameter by name through its typed setter.
func (a *API) Set(ctx context.Context, id int, name ct.Name, value int) error {
	if _, err := a.acc.Table().Lookup(name); err != nil {
		return err
	}
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("%w: %q", ct.ErrReadOnly, name)
	}
	return set(a, ctx, id, value)
}

// Writable reports whether Set accepts name.
func Writable(name ct.Name) bool {
	_, ok := setters[name]
	return ok
}
