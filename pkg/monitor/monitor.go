// Package monitor polls a chain of devices at a fixed rate and publishes
// the latest positions and sensor readings. It can also drive follower
// actuators from leader positions.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/dynamixel/pkg/robot"
)

// Chain is the part of *robot.Chain the poller uses.
type Chain interface {
	ReadPositions(ctx context.Context) (map[robot.DeviceName]float64, error)
	WritePositions(ctx context.Context, positions map[robot.DeviceName]float64) error
	ReadSensors(ctx context.Context) (map[robot.DeviceName]robot.SensorReading, error)
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
}

// State represents one poll of the chain.
type State struct {
	Positions map[robot.DeviceName]float64
	Sensors   map[robot.DeviceName]robot.SensorReading
	Timestamp time.Time
	Error     error
}

// Config holds configuration for the poller.
type Config struct {
	Hz int

	// Follow maps a follower actuator to the leader whose position it
	// copies. Followers get torque enabled while the poller runs.
	Follow map[robot.DeviceName]robot.DeviceName

	// Mirror inverts the copied position for the listed followers.
	Mirror map[robot.DeviceName]bool

	Sensors bool
}

// Poller manages the polling loop.
type Poller struct {
	chain Chain
	cfg   Config

	mu      sync.Mutex
	running bool
	stateCh chan State
	logCh   chan string
}

// New creates a poller over chain.
func New(chain Chain, cfg Config) *Poller {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	return &Poller{
		chain:   chain,
		cfg:     cfg,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}
}

// States returns a channel that receives state updates. Only the latest
// state is kept when the reader falls behind.
func (p *Poller) States() <-chan State {
	return p.stateCh
}

// Logs returns a channel that receives log messages.
func (p *Poller) Logs() <-chan string {
	return p.logCh
}

// Hz returns the poll frequency.
func (p *Poller) Hz() int {
	return p.cfg.Hz
}

func (p *Poller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case p.logCh <- msg:
	default:
	}
}

// Run polls until ctx is done. It returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("already running")
	}
	p.running = true
	p.mu.Unlock()

	if len(p.cfg.Follow) > 0 {
		if err := p.chain.Enable(ctx); err != nil {
			p.log("Warning: failed to enable torque: %v", err)
		} else {
			p.log("Torque enabled, %d follower(s)", len(p.cfg.Follow))
		}
	}

	p.log("Polling at %d Hz", p.cfg.Hz)

	ticker := time.NewTicker(time.Second / time.Duration(p.cfg.Hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.shutdown()
			return ctx.Err()
		case <-ticker.C:
			p.Step(ctx)
		}
	}
}

// Step performs a single poll.
func (p *Poller) Step(ctx context.Context) {
	state := State{Timestamp: time.Now()}

	positions, err := p.chain.ReadPositions(ctx)
	if err != nil {
		p.log("Read error: %v", err)
		state.Error = err
	}
	state.Positions = positions

	if p.cfg.Sensors {
		readings, err := p.chain.ReadSensors(ctx)
		if err != nil {
			p.log("Sensor error: %v", err)
			state.Error = err
		}
		state.Sensors = readings
	}

	if targets := p.targets(positions); len(targets) > 0 {
		if err := p.chain.WritePositions(ctx, targets); err != nil {
			p.log("Write error: %v", err)
		}
	}

	p.sendState(state)
}

func (p *Poller) targets(positions map[robot.DeviceName]float64) map[robot.DeviceName]float64 {
	out := make(map[robot.DeviceName]float64, len(p.cfg.Follow))
	for follower, leader := range p.cfg.Follow {
		pos, ok := positions[leader]
		if !ok {
			continue
		}
		if p.cfg.Mirror[follower] {
			pos = -pos
		}
		out[follower] = pos
	}
	return out
}

func (p *Poller) sendState(s State) {
	select {
	case p.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-p.stateCh:
		default:
		}
		p.stateCh <- s
	}
}

func (p *Poller) shutdown() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	if len(p.cfg.Follow) > 0 {
		if err := p.chain.Disable(context.Background()); err != nil {
			p.log("Warning: failed to disable torque: %v", err)
		} else {
			p.log("Torque disabled")
		}
	}
	p.log("Polling stopped")
}
