// Package controltable describes the fixed-layout control tables exposed by
// Dynamixel devices: which parameter lives at which address, and whether that
// address holds a single byte or a little-endian word.
package controltable

import (
	"errors"
	"fmt"
	"sort"
)

// BroadcastID addresses every device on the bus. Devices never answer
// instructions sent to it.
const BroadcastID = 254

var (
	// ErrUnknownParameter is returned when a name is not part of a registry.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrReadOnly is returned when a by-name write targets a parameter that
	// has no setter.
	ErrReadOnly = errors.New("parameter is read-only")
)

// Name is the human-readable key of a control table parameter,
// e.g. "goal position(l)".
type Name string

// Address is an offset into a device's control table.
type Address int

// Width is the size of the value stored at an address.
type Width int

const (
	// Word is a two byte, little-endian value. Addresses a registry does
	// not know about are treated as words.
	Word Width = iota
	// Byte is a single byte value.
	Byte
)

func (w Width) String() string {
	if w == Byte {
		return "byte"
	}
	return "word"
}

// Access describes whether a parameter may be written.
type Access int

const (
	ReadWrite Access = iota
	ReadOnly
)

func (a Access) String() string {
	if a == ReadOnly {
		return "R"
	}
	return "RW"
}

// Entry is one named parameter of a control table.
type Entry struct {
	Name    Name
	Address Address
	Width   Width
	Access  Access

	// HighByte marks the "(h)" half of a word. Reading the low half already
	// returns it.
	HighByte bool
}

// Registry maps parameter names to addresses and addresses to widths.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	model   string
	entries []Entry
	byName  map[Name]Entry
	widths  map[Address]Width
}

// NewRegistry builds a registry from entries. Entries are copied; the
// width of each address is fixed here and never re-derived.
func NewRegistry(model string, entries []Entry) *Registry {
	r := &Registry{
		model:   model,
		entries: make([]Entry, len(entries)),
		byName:  make(map[Name]Entry, len(entries)),
		widths:  make(map[Address]Width, len(entries)),
	}
	copy(r.entries, entries)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Address < r.entries[j].Address
	})
	low := Address(-1)
	for i := range r.entries {
		e := &r.entries[i]
		switch {
		case e.Width == Word && low >= 0 && e.Address == low+1:
			e.HighByte = true
			low = -1
		case e.Width == Word:
			low = e.Address
		default:
			low = -1
		}
	}
	for _, e := range r.entries {
		r.byName[e.Name] = e
		r.widths[e.Address] = e.Width
	}
	return r
}

// Model returns the device family the registry describes.
func (r *Registry) Model() string {
	return r.model
}

// Address returns the address of the named parameter.
func (r *Registry) Address(name Name) (Address, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return 0, err
	}
	return e.Address, nil
}

// Lookup returns the full entry for name.
func (r *Registry) Lookup(name Name) (Entry, error) {
	e, ok := r.byName[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return e, nil
}

// Width returns the width of the value at addr. It never fails: addresses
// outside the table resolve to Word.
func (r *Registry) Width(addr Address) Width {
	if w, ok := r.widths[addr]; ok {
		return w
	}
	return Word
}

// Entries returns all entries ordered by address.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns all parameter names ordered by address.
func (r *Registry) Names() []Name {
	names := make([]Name, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}
