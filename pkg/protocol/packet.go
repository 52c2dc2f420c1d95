// Package protocol encodes and decodes Dynamixel Protocol 1.0 packets.
//
// An instruction packet is
//
//	0xFF 0xFF ID LENGTH INSTRUCTION PARAM... CHECKSUM
//
// and a status packet replaces INSTRUCTION with an error bitmask. LENGTH
// counts the parameters plus two, and CHECKSUM is the inverted low byte of
// the sum of every byte between the header and the checksum.
package protocol

import (
	"errors"
	"fmt"
	"io"
)

// Instruction is a Protocol 1.0 instruction code.
type Instruction byte

const (
	Ping      Instruction = 0x01
	Read      Instruction = 0x02
	Write     Instruction = 0x03
	RegWrite  Instruction = 0x04
	Action    Instruction = 0x05
	Reset     Instruction = 0x06
	SyncWrite Instruction = 0x83
)

func (i Instruction) String() string {
	switch i {
	case Ping:
		return "PING"
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	case RegWrite:
		return "REG_WRITE"
	case Action:
		return "ACTION"
	case Reset:
		return "RESET"
	case SyncWrite:
		return "SYNC_WRITE"
	default:
		return fmt.Sprintf("Instruction(0x%02X)", byte(i))
	}
}

const (
	headerByte = 0xFF

	// MaxParams bounds the parameter count so LENGTH fits in a byte.
	MaxParams = 253
)

// Framing errors.
var (
	// ErrChecksum indicates a status packet whose checksum does not match.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrBadLength indicates a LENGTH field smaller than two.
	ErrBadLength = errors.New("bad packet length")

	// ErrTooManyParams indicates an instruction that cannot be framed.
	ErrTooManyParams = errors.New("too many parameters")

	// ErrUnexpectedID indicates a status packet from a device other than
	// the one addressed.
	ErrUnexpectedID = errors.New("unexpected device id")
)

// Packet is an instruction sent to a device.
type Packet struct {
	ID          byte
	Instruction Instruction
	Params      []byte
}

// MarshalBinary frames the packet for the wire.
func (p Packet) MarshalBinary() ([]byte, error) {
	if len(p.Params) > MaxParams {
		return nil, fmt.Errorf("%w: %d", ErrTooManyParams, len(p.Params))
	}
	length := byte(len(p.Params) + 2)
	buf := make([]byte, 0, len(p.Params)+6)
	buf = append(buf, headerByte, headerByte, p.ID, length, byte(p.Instruction))
	buf = append(buf, p.Params...)
	buf = append(buf, Checksum(buf[2:]))
	return buf, nil
}

// Checksum returns the Protocol 1.0 checksum of body, which starts at the ID
// byte and ends with the last parameter.
func Checksum(body []byte) byte {
	var sum byte
	for _, b := range body {
		sum += b
	}
	return ^sum
}

// Status is a device's reply to an instruction.
type Status struct {
	ID     byte
	Error  ErrorBits
	Params []byte
}

// Err returns the device-reported error, or nil when no error bit is set.
func (s Status) Err() error {
	if s.Error == 0 {
		return nil
	}
	return &DeviceError{ID: s.ID, Bits: s.Error}
}

// ReadStatus reads one status packet from r. Bytes before the 0xFF 0xFF
// header are skipped.
func ReadStatus(r io.Reader) (Status, error) {
	if err := syncHeader(r); err != nil {
		return Status{}, err
	}

	var head [3]byte // id, length, error
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Status{}, err
	}
	// A third 0xFF means the header was longer than two bytes; shift by one.
	for head[0] == headerByte {
		head[0], head[1] = head[1], head[2]
		if _, err := io.ReadFull(r, head[2:]); err != nil {
			return Status{}, err
		}
	}
	if head[1] < 2 {
		return Status{}, fmt.Errorf("%w: %d", ErrBadLength, head[1])
	}

	rest := make([]byte, int(head[1])-1) // params + checksum
	if _, err := io.ReadFull(r, rest); err != nil {
		return Status{}, err
	}
	params := rest[:len(rest)-1]

	body := append(head[:], params...)
	if got, want := rest[len(rest)-1], Checksum(body); got != want {
		return Status{}, fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrChecksum, got, want)
	}

	return Status{
		ID:     head[0],
		Error:  ErrorBits(head[2]),
		Params: append([]byte(nil), params...),
	}, nil
}

func syncHeader(r io.Reader) error {
	var b [1]byte
	seen := 0
	for seen < 2 {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		if b[0] == headerByte {
			seen++
		} else {
			seen = 0
		}
	}
	return nil
}

// ReadInstruction builds a READ of n bytes starting at addr.
func ReadInstruction(id, addr byte, n byte) Packet {
	return Packet{ID: id, Instruction: Read, Params: []byte{addr, n}}
}

// WriteInstruction builds a WRITE of data starting at addr.
func WriteInstruction(id, addr byte, data ...byte) Packet {
	params := make([]byte, 0, len(data)+1)
	params = append(params, addr)
	params = append(params, data...)
	return Packet{ID: id, Instruction: Write, Params: params}
}

// PingInstruction builds a PING.
func PingInstruction(id byte) Packet {
	return Packet{ID: id, Instruction: Ping}
}

// Word splits a value into its little-endian low and high bytes.
func Word(v int) (lo, hi byte) {
	return byte(v & 0xFF), byte((v >> 8) & 0xFF)
}

// MakeWord joins little-endian bytes.
func MakeWord(lo, hi byte) int {
	return int(lo) | int(hi)<<8
}
