// Package register reads and writes control table addresses without the
// caller having to know whether an address holds a byte or a word.
package register

import (
	"context"

	"github.com/gwillem/dynamixel/pkg/controltable"
)

// Transport is the raw register I/O a bus offers. Implementations report
// wire-level failures (timeouts, checksum errors) as errors; the accessor
// passes them through untouched.
type Transport interface {
	ReadByteAt(ctx context.Context, id, addr int) (int, error)
	ReadWordAt(ctx context.Context, id, addr int) (int, error)
	WriteByteAt(ctx context.Context, id, addr, value int) error
	WriteWordAt(ctx context.Context, id, addr, value int) error
}

// Accessor dispatches reads and writes to the byte or word primitive of a
// transport according to a registry's address widths.
type Accessor struct {
	table *controltable.Registry
	tr    Transport
}

// New creates an accessor for the devices described by table.
func New(table *controltable.Registry, tr Transport) *Accessor {
	return &Accessor{table: table, tr: tr}
}

// Table returns the registry the accessor dispatches on.
func (a *Accessor) Table() *controltable.Registry {
	return a.table
}

// Read returns the raw value at addr on device id.
func (a *Accessor) Read(ctx context.Context, id int, addr controltable.Address) (int, error) {
	if a.table.Width(addr) == controltable.Byte {
		return a.tr.ReadByteAt(ctx, id, int(addr))
	}
	return a.tr.ReadWordAt(ctx, id, int(addr))
}

// Write stores value at addr on device id. The value is not range checked.
func (a *Accessor) Write(ctx context.Context, id int, addr controltable.Address, value int) error {
	if a.table.Width(addr) == controltable.Byte {
		return a.tr.WriteByteAt(ctx, id, int(addr), value)
	}
	return a.tr.WriteWordAt(ctx, id, int(addr), value)
}

// ReadNamed resolves name and reads it. Unknown names fail before any bus
// traffic.
func (a *Accessor) ReadNamed(ctx context.Context, id int, name controltable.Name) (int, error) {
	addr, err := a.table.Address(name)
	if err != nil {
		return 0, err
	}
	return a.Read(ctx, id, addr)
}

// WriteNamed resolves name and writes value to it.
func (a *Accessor) WriteNamed(ctx context.Context, id int, name controltable.Name, value int) error {
	addr, err := a.table.Address(name)
	if err != nil {
		return err
	}
	return a.Write(ctx, id, addr, value)
}
