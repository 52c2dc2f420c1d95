// Package snapshot captures the control table of a device and writes it
// back later, as YAML for people or CBOR for compact storage.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/gwillem/dynamixel/internal/log"
	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/register"
)

// ErrModelMismatch is returned when a snapshot is restored onto a device
// table of another model.
var ErrModelMismatch = errors.New("snapshot model does not match device")

// Device is a by-name parameter API. *actuator.API and *sensor.API
// implement it.
type Device interface {
	Accessor() *register.Accessor
	Get(ctx context.Context, id int, name ct.Name) (int, error)
	Set(ctx context.Context, id int, name ct.Name, value int) error
}

// Value is one captured parameter.
type Value struct {
	Name    ct.Name `yaml:"name" cbor:"name"`
	Address int     `yaml:"address" cbor:"address"`
	Value   int     `yaml:"value" cbor:"value"`
}

// Snapshot is the captured control table of one device.
type Snapshot struct {
	Model  string    `yaml:"model" cbor:"model"`
	ID     int       `yaml:"id" cbor:"id"`
	Taken  time.Time `yaml:"taken" cbor:"taken"`
	Values []Value   `yaml:"values" cbor:"values"`
}

// Lookup returns the captured value of name.
func (s *Snapshot) Lookup(name ct.Name) (Value, bool) {
	for _, v := range s.Values {
		if v.Name == name {
			return v, true
		}
	}
	return Value{}, false
}

// params returns the table entries worth capturing: everything but the
// high halves of words.
func params(table *ct.Registry) []ct.Entry {
	var out []ct.Entry
	for _, e := range table.Entries() {
		if !e.HighByte {
			out = append(out, e)
		}
	}
	return out
}

// Capture reads every parameter of device id.
func Capture(ctx context.Context, dev Device, id int) (*Snapshot, error) {
	table := dev.Accessor().Table()
	snap := &Snapshot{
		Model: table.Model(),
		ID:    id,
		Taken: time.Now().UTC().Truncate(time.Second),
	}
	for _, e := range params(table) {
		v, err := dev.Get(ctx, id, e.Name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name, err)
		}
		snap.Values = append(snap.Values, Value{Name: e.Name, Address: int(e.Address), Value: v})
	}
	return snap, nil
}

// Options control Restore.
type Options struct {
	// EEPROM also restores the persistent settings below
	// controltable.EEPROMEnd. ID and baud rate are never restored.
	EEPROM bool
}

// Restore writes the writable values of snap to device id through the
// typed setters, so every value policy applies. It returns the names it
// wrote.
func Restore(ctx context.Context, dev Device, id int, snap *Snapshot, opts Options) ([]ct.Name, error) {
	table := dev.Accessor().Table()
	if snap.Model != table.Model() {
		return nil, fmt.Errorf("%w: snapshot is %s, table is %s", ErrModelMismatch, snap.Model, table.Model())
	}

	var written []ct.Name
	for _, v := range snap.Values {
		e, err := table.Lookup(v.Name)
		if err != nil {
			return written, err
		}
		if e.Access == ct.ReadOnly || e.Name == ct.ID || e.Name == ct.BaudRate {
			continue
		}
		if e.Address < ct.EEPROMEnd && !opts.EEPROM {
			continue
		}
		if err := dev.Set(ctx, id, e.Name, v.Value); err != nil {
			if errors.Is(err, ct.ErrReadOnly) {
				continue
			}
			return written, fmt.Errorf("write %s: %w", e.Name, err)
		}
		written = append(written, e.Name)
	}
	log.Debug("snapshot restored", "id", id, "model", snap.Model, "written", len(written))
	return written, nil
}

// Format is a snapshot file encoding.
type Format int

const (
	YAML Format = iota
	CBOR
)

// FormatFor picks the encoding from a file name: ".cbor" is CBOR,
// anything else YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return CBOR
	}
	return YAML
}

// Marshal encodes snap.
func Marshal(snap *Snapshot, f Format) ([]byte, error) {
	if f == CBOR {
		return cbor.Marshal(snap)
	}
	return yaml.Marshal(snap)
}

// Unmarshal decodes a snapshot.
func Unmarshal(data []byte, f Format) (*Snapshot, error) {
	var snap Snapshot
	var err error
	if f == CBOR {
		err = cbor.Unmarshal(data, &snap)
	} else {
		err = yaml.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes snap to path in the format its extension selects.
func Save(path string, snap *Snapshot) error {
	data, err := Marshal(snap, FormatFor(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a snapshot written by Save.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, FormatFor(path))
}
