// Package transport talks Dynamixel Protocol 1.0 over a half-duplex serial
// line. It implements register.Transport.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/gwillem/dynamixel/internal/log"
	"github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/protocol"
)

const (
	// DefaultBaudNumber is the factory baud setting of AX series devices
	// (1 Mbps).
	DefaultBaudNumber = 1
	DefaultTimeout    = 50 * time.Millisecond
	DefaultRetries    = 1
)

var (
	// ErrTimeout is returned when no complete status packet arrives in time.
	ErrTimeout = errors.New("timed out waiting for status packet")

	// ErrNoStatus is returned by reads and pings addressed to the broadcast
	// ID, which never answers.
	ErrNoStatus = errors.New("broadcast instructions return no status")
)

// Port is the subset of a serial port the transport needs. go.bug.st/serial
// ports satisfy it.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
}

// Config describes how to open and use a bus.
type Config struct {
	Port     string
	BaudRate int // bps; zero means the rate of DefaultBaudNumber
	Timeout  time.Duration
	Retries  int

	// StatusReturnLevel must match the devices on the bus: 0 answers only
	// PING, 1 also READ, 2 every instruction. Writes wait for a status
	// packet only at level 2.
	StatusReturnLevel int
}

// DefaultConfig returns the settings of factory-fresh AX devices on port.
func DefaultConfig(port string) Config {
	return Config{
		Port:              port,
		BaudRate:          BaudRateFromNumber(DefaultBaudNumber),
		Timeout:           DefaultTimeout,
		Retries:           DefaultRetries,
		StatusReturnLevel: 2,
	}
}

// BaudRateFromNumber converts a control table baud number to bps.
func BaudRateFromNumber(n int) int {
	return 2000000 / (n + 1)
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}

// Serial is a Protocol 1.0 bus. It is safe for concurrent use; every
// instruction and its status packet form one exclusive round trip.
type Serial struct {
	mu   sync.Mutex
	port Port
	cfg  Config
}

// Open opens cfg.Port and returns a bus over it.
func Open(cfg Config) (*Serial, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = BaudRateFromNumber(DefaultBaudNumber)
	}
	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}
	s, err := New(port, cfg)
	if err != nil {
		port.Close()
		return nil, err
	}
	log.Debug("bus opened", "port", cfg.Port, "baud", cfg.BaudRate)
	return s, nil
}

// New wraps an already open port.
func New(port Port, cfg Config) (*Serial, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if err := port.SetReadTimeout(cfg.Timeout); err != nil {
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return &Serial{port: port, cfg: cfg}, nil
}

// Config returns the configuration the bus runs with.
func (s *Serial) Config() Config {
	return s.cfg
}

// Close releases the port.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}

// Ping checks that device id answers.
func (s *Serial) Ping(ctx context.Context, id int) error {
	if id == controltable.BroadcastID {
		return ErrNoStatus
	}
	if err := checkID(id); err != nil {
		return err
	}
	_, err := s.transact(ctx, protocol.PingInstruction(byte(id)), true)
	return err
}

func (s *Serial) ReadByteAt(ctx context.Context, id, addr int) (int, error) {
	params, err := s.read(ctx, id, addr, 1)
	if err != nil {
		return 0, err
	}
	return int(params[0]), nil
}

func (s *Serial) ReadWordAt(ctx context.Context, id, addr int) (int, error) {
	params, err := s.read(ctx, id, addr, 2)
	if err != nil {
		return 0, err
	}
	return protocol.MakeWord(params[0], params[1]), nil
}

// WriteByteAt writes the low byte of value.
func (s *Serial) WriteByteAt(ctx context.Context, id, addr, value int) error {
	return s.write(ctx, id, addr, byte(value))
}

// WriteWordAt writes the low 16 bits of value, little-endian.
func (s *Serial) WriteWordAt(ctx context.Context, id, addr, value int) error {
	lo, hi := protocol.Word(value)
	return s.write(ctx, id, addr, lo, hi)
}

func (s *Serial) read(ctx context.Context, id, addr, n int) ([]byte, error) {
	if id == controltable.BroadcastID {
		return nil, ErrNoStatus
	}
	if err := checkTarget(id, addr); err != nil {
		return nil, err
	}
	st, err := s.transact(ctx, protocol.ReadInstruction(byte(id), byte(addr), byte(n)), true)
	if err != nil {
		return nil, err
	}
	if len(st.Params) < n {
		return nil, fmt.Errorf("%w: read of %d bytes returned %d", protocol.ErrBadLength, n, len(st.Params))
	}
	return st.Params, nil
}

func (s *Serial) write(ctx context.Context, id, addr int, data ...byte) error {
	if err := checkTarget(id, addr); err != nil {
		return err
	}
	reply := id != controltable.BroadcastID && s.cfg.StatusReturnLevel >= 2
	_, err := s.transact(ctx, protocol.WriteInstruction(byte(id), byte(addr), data...), reply)
	return err
}

// transact sends pkt and, when reply is set, waits for its status packet.
// Framing failures are retried; device-reported errors are not.
func (s *Serial) transact(ctx context.Context, pkt protocol.Packet, reply bool) (protocol.Status, error) {
	frame, err := pkt.MarshalBinary()
	if err != nil {
		return protocol.Status{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var st protocol.Status
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return protocol.Status{}, err
		}
		st, err = s.roundTrip(ctx, pkt.ID, frame, reply)
		if err == nil || !retryable(err) || attempt >= s.cfg.Retries {
			break
		}
		log.Debug("retrying instruction", "id", pkt.ID, "instruction", pkt.Instruction.String(), "attempt", attempt+1, "err", err)
	}
	if err != nil {
		return protocol.Status{}, err
	}
	return st, st.Err()
}

func (s *Serial) roundTrip(ctx context.Context, id byte, frame []byte, reply bool) (protocol.Status, error) {
	if err := s.port.ResetInputBuffer(); err != nil {
		return protocol.Status{}, fmt.Errorf("reset input: %w", err)
	}
	if _, err := s.port.Write(frame); err != nil {
		return protocol.Status{}, fmt.Errorf("write packet: %w", err)
	}
	if !reply {
		return protocol.Status{}, nil
	}

	r := &deadlineReader{ctx: ctx, port: s.port, deadline: time.Now().Add(s.cfg.Timeout)}
	st, err := protocol.ReadStatus(r)
	if err != nil {
		if r.timedOut {
			return protocol.Status{}, ErrTimeout
		}
		return protocol.Status{}, err
	}
	if st.ID != id {
		return protocol.Status{}, fmt.Errorf("%w: sent to %d, reply from %d", protocol.ErrUnexpectedID, id, st.ID)
	}
	return st, nil
}

func retryable(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, protocol.ErrChecksum) ||
		errors.Is(err, protocol.ErrBadLength) ||
		errors.Is(err, protocol.ErrUnexpectedID) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func checkID(id int) error {
	if id < 0 || id > controltable.BroadcastID {
		return fmt.Errorf("device id %d out of range 0-%d", id, controltable.BroadcastID)
	}
	return nil
}

func checkTarget(id, addr int) error {
	if err := checkID(id); err != nil {
		return err
	}
	if addr < 0 || addr > 0xFF {
		return fmt.Errorf("address %d out of range 0-255", addr)
	}
	return nil
}

// deadlineReader turns the port's empty reads into EOF once the status
// deadline passes, so a silent device ends the read instead of spinning.
type deadlineReader struct {
	ctx      context.Context
	port     Port
	deadline time.Time
	timedOut bool
}

func (r *deadlineReader) Read(p []byte) (int, error) {
	for {
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}
		n, err := r.port.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
		if time.Now().After(r.deadline) {
			r.timedOut = true
			return 0, io.EOF
		}
	}
}
