// Package sensor exposes the control table of AX-S1 class sensor modules:
// infrared distance and light sensing, a microphone, a buzzer and an IR
// remote control link.
package sensor

import (
	"context"

	"github.com/gwillem/dynamixel/internal/log"
	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/register"
)

// API is a stateless view of the sensor modules reachable through one
// accessor.
type API struct {
	acc *register.Accessor
}

// New creates an API over acc, which must dispatch on controltable.Sensor.
func New(acc *register.Accessor) *API {
	return &API{acc: acc}
}

// NewWithTransport builds the sensor table and an accessor over tr.
func NewWithTransport(tr register.Transport) *API {
	return New(register.New(ct.Sensor(), tr))
}

// Accessor returns the underlying width-dispatching accessor.
func (a *API) Accessor() *register.Accessor {
	return a.acc
}

func (a *API) get(ctx context.Context, id int, name ct.Name) (int, error) {
	return a.acc.ReadNamed(ctx, id, name)
}

func (a *API) set(ctx context.Context, id int, name ct.Name, value int) error {
	return a.acc.WriteNamed(ctx, id, name, value)
}

func (a *API) setClamped(ctx context.Context, id int, name ct.Name, v, lo, hi int) error {
	return a.set(ctx, id, name, min(max(v, lo), hi))
}

func dropped(id int, name ct.Name, value int) error {
	log.Debug("write dropped", "id", id, "param", string(name), "value", value)
	return nil
}
