package protocol

import (
	"fmt"
	"strings"
)

// ErrorBits is the error byte of a status packet. The same bit layout is
// used by the alarm LED and alarm shutdown registers.
type ErrorBits byte

const (
	InputVoltageError ErrorBits = 1 << iota
	AngleLimitError
	OverheatingError
	RangeError
	ChecksumError
	OverloadError
	InstructionError
)

var errorBitNames = []struct {
	bit  ErrorBits
	name string
}{
	{InputVoltageError, "input voltage"},
	{AngleLimitError, "angle limit"},
	{OverheatingError, "overheating"},
	{RangeError, "range"},
	{ChecksumError, "checksum"},
	{OverloadError, "overload"},
	{InstructionError, "instruction"},
}

// Has reports whether bit is set.
func (e ErrorBits) Has(bit ErrorBits) bool {
	return e&bit != 0
}

func (e ErrorBits) String() string {
	if e == 0 {
		return "none"
	}
	var names []string
	for _, n := range errorBitNames {
		if e.Has(n.bit) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// DeviceError is an error reported by a device in its status packet.
type DeviceError struct {
	ID   byte
	Bits ErrorBits
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device %d reported error: %s", e.ID, e.Bits)
}

// Has reports whether the device flagged bit.
func (e *DeviceError) Has(bit ErrorBits) bool {
	return e.Bits.Has(bit)
}
