// Package actuator exposes the control table of AX-12 class Dynamixel
// actuators as typed getters and setters.
//
// Setters apply the value policy of their parameter before anything is
// sent: most clamp to the valid range, a few drop invalid values without
// writing, and some pass the value through unchanged. Getters return the raw
// register value; angular helpers convert positions to degrees.
package actuator

import (
	"context"

	"github.com/gwillem/dynamixel/internal/log"
	"github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/register"
)

// API is a stateless view of the actuators reachable through one accessor.
// Every call is one or more synchronous bus round trips.
type API struct {
	acc *register.Accessor
}

// New creates an API over acc. The accessor must dispatch on the actuator
// table (controltable.Actuator).
func New(acc *register.Accessor) *API {
	return &API{acc: acc}
}

// NewWithTransport builds the actuator table and an accessor over tr.
func NewWithTransport(tr register.Transport) *API {
	return New(register.New(controltable.Actuator(), tr))
}

// Accessor returns the underlying width-dispatching accessor.
func (a *API) Accessor() *register.Accessor {
	return a.acc
}

func (a *API) get(ctx context.Context, id int, name controltable.Name) (int, error) {
	return a.acc.ReadNamed(ctx, id, name)
}

func (a *API) set(ctx context.Context, id int, name controltable.Name, value int) error {
	return a.acc.WriteNamed(ctx, id, name, value)
}

// drop records a write rejected by its value policy. Nothing is sent and the
// caller gets no error.
func drop(id int, name controltable.Name, value int) {
	log.Debug("write dropped", "id", id, "param", string(name), "value", value)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFlag(v int) bool {
	return v == 0 || v == 1
}
