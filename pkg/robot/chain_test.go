package robot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/dynamixel/pkg/register"
)

// fakeBus answers pings for the IDs in alive.
type fakeBus struct {
	*register.Mock
	alive  map[int]bool
	closed bool
}

func (b *fakeBus) Ping(ctx context.Context, id int) error {
	if !b.alive[id] {
		return errors.New("timeout")
	}
	return nil
}

func (b *fakeBus) Close() error {
	b.closed = true
	return nil
}

func testChain() (*Chain, *fakeBus) {
	bus := &fakeBus{Mock: register.NewMock(), alive: map[int]bool{1: true, 100: true}}
	devices := []DeviceConfig{
		{Name: "pan", ID: 1, Kind: KindActuator, Calibration: &Calibration{RangeMin: 200, RangeMax: 800}},
		{Name: "tilt", ID: 2, Kind: KindActuator},
		{Name: "head", ID: 100, Kind: KindSensor},
	}
	return NewChain(bus, devices), bus
}

func TestChain_Ping(t *testing.T) {
	c, _ := testChain()

	failed := c.Ping(context.Background())
	assert.Len(t, failed, 1)
	assert.Contains(t, failed, DeviceName("tilt"))
}

func TestChain_EnableDisable(t *testing.T) {
	c, bus := testChain()
	ctx := context.Background()

	require.NoError(t, c.Enable(ctx))
	assert.Equal(t, 1, bus.Get(1, 24))
	assert.Equal(t, 1, bus.Get(2, 24))
	assert.Equal(t, 0, bus.Get(100, 24), "sensors have no torque")

	require.NoError(t, c.Disable(ctx))
	assert.Equal(t, 0, bus.Get(1, 24))
}

func TestChain_ReadPositions(t *testing.T) {
	c, bus := testChain()
	bus.Set(1, 36, 500)
	bus.Set(2, 36, 1023)

	positions, err := c.ReadPositions(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0, positions["pan"], 0.001)
	assert.InDelta(t, 100, positions["tilt"], 0.001)
	assert.NotContains(t, positions, DeviceName("head"))
}

func TestChain_ReadPositionsError(t *testing.T) {
	c, bus := testChain()
	bus.Err = errors.New("no status")

	_, err := c.ReadPositions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pan (id 1)")
	assert.Contains(t, err.Error(), "tilt (id 2)")
}

func TestChain_WritePositions(t *testing.T) {
	c, bus := testChain()

	require.NoError(t, c.WritePositions(context.Background(), map[DeviceName]float64{
		"pan":  -50,
		"head": 10,
	}))

	assert.Equal(t, []register.MockCall{
		{Method: "WriteWordAt", ID: 1, Addr: 30, Value: 350},
	}, bus.Calls())
}

func TestChain_ApplyLimits(t *testing.T) {
	c, bus := testChain()

	require.NoError(t, c.ApplyLimits(context.Background()))

	assert.Equal(t, 200, bus.Get(1, 6))
	assert.Equal(t, 800, bus.Get(1, 8))
	assert.Len(t, bus.Writes(), 2, "uncalibrated actuators are left alone")
}

func TestChain_ReadSensors(t *testing.T) {
	c, bus := testChain()
	bus.Set(100, 26, 10)
	bus.Set(100, 27, 20)
	bus.Set(100, 28, 30)
	bus.Set(100, 31, 40)
	bus.Set(100, 35, 128)

	readings, err := c.ReadSensors(context.Background())
	require.NoError(t, err)
	require.Contains(t, readings, DeviceName("head"))
	r := readings["head"]
	assert.Equal(t, [3]int{10, 20, 30}, r.IR)
	assert.Equal(t, [3]int{0, 0, 40}, r.Light)
	assert.Equal(t, 128, r.Sound)
}

func TestChain_Close(t *testing.T) {
	c, bus := testChain()
	require.NoError(t, c.Close())
	assert.True(t, bus.closed)
}
