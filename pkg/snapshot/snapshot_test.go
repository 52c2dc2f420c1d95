package snapshot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/dynamixel/pkg/actuator"
	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/register"
	"github.com/gwillem/dynamixel/pkg/sensor"
)

func TestCapture_SkipsHighBytes(t *testing.T) {
	tr := register.NewMock()
	tr.Set(1, 0, 12)
	tr.Set(1, 30, 512)
	api := actuator.NewWithTransport(tr)

	snap, err := Capture(context.Background(), api, 1)
	require.NoError(t, err)

	assert.Equal(t, "AX-12", snap.Model)
	assert.Equal(t, 1, snap.ID)
	_, ok := snap.Lookup(ct.GoalPositionH)
	assert.False(t, ok)
	_, ok = snap.Lookup(ct.ModelNumberH)
	assert.False(t, ok)

	v, ok := snap.Lookup(ct.GoalPositionL)
	require.True(t, ok)
	assert.Equal(t, 512, v.Value)
	assert.Equal(t, 30, v.Address)

	v, ok = snap.Lookup(ct.ModelNumberL)
	require.True(t, ok)
	assert.Equal(t, 12, v.Value)

	for _, c := range tr.Calls() {
		assert.NotContains(t, []int{1, 7, 9, 15, 31, 33, 35, 37, 39, 41, 49}, c.Addr, "high byte read at %d", c.Addr)
	}
}

func TestCapture_EveryLowHalf(t *testing.T) {
	tests := []struct {
		table *ct.Registry
		dev   Device
	}{
		{ct.Actuator(), actuator.NewWithTransport(register.NewMock())},
		{ct.Sensor(), sensor.NewWithTransport(register.NewMock())},
	}
	for _, tt := range tests {
		t.Run(tt.table.Model(), func(t *testing.T) {
			snap, err := Capture(context.Background(), tt.dev, 1)
			require.NoError(t, err)

			want := 0
			for _, e := range tt.table.Entries() {
				_, ok := snap.Lookup(e.Name)
				if strings.HasSuffix(string(e.Name), "(h)") {
					assert.False(t, ok, "%q captured", e.Name)
					continue
				}
				want++
				assert.True(t, ok, "%q missing", e.Name)
			}
			assert.Len(t, snap.Values, want)
		})
	}
}

func TestRestore_RoundTripsWritableParams(t *testing.T) {
	tests := []struct {
		model string
		api   func(register.Transport) Device
	}{
		{"AX-12", func(tr register.Transport) Device { return actuator.NewWithTransport(tr) }},
		{"AX-S1", func(tr register.Transport) Device { return sensor.NewWithTransport(tr) }},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			ctx := context.Background()
			src := register.NewMock()
			dev := tt.api(src)
			table := dev.Accessor().Table()

			var restorable []ct.Entry
			for _, e := range table.Entries() {
				if e.Access == ct.ReadOnly || e.HighByte || e.Name == ct.ID || e.Name == ct.BaudRate {
					continue
				}
				restorable = append(restorable, e)
				require.NoError(t, dev.Set(ctx, 1, e.Name, 100), e.Name)
			}
			require.NotEmpty(t, restorable)

			snap, err := Capture(ctx, dev, 1)
			require.NoError(t, err)

			dst := register.NewMock()
			_, err = Restore(ctx, tt.api(dst), 9, snap, Options{EEPROM: true})
			require.NoError(t, err)

			for _, e := range restorable {
				assert.Equal(t, src.Get(1, int(e.Address)), dst.Get(9, int(e.Address)), "%q", e.Name)
			}
		})
	}
}

func TestRestore_RAMOnlyByDefault(t *testing.T) {
	ctx := context.Background()
	src := register.NewMock()
	src.Set(1, 3, 1)     // id
	src.Set(1, 14, 700)  // max torque (EEPROM)
	src.Set(1, 30, 600)  // goal position
	src.Set(1, 36, 321)  // present position (read-only)
	src.Set(1, 48, 40)   // punch
	src.Set(1, 26, 1)    // cw compliance margin

	snap, err := Capture(ctx, actuator.NewWithTransport(src), 1)
	require.NoError(t, err)

	dst := register.NewMock()
	written, err := Restore(ctx, actuator.NewWithTransport(dst), 9, snap, Options{})
	require.NoError(t, err)

	assert.Contains(t, written, ct.GoalPositionL)
	assert.NotContains(t, written, ct.MaxTorqueL)
	assert.NotContains(t, written, ct.PresentPositionL)
	assert.Equal(t, 600, dst.Get(9, 30))
	assert.Equal(t, 40, dst.Get(9, 48))
	assert.Equal(t, 1, dst.Get(9, 26))
	assert.Equal(t, 0, dst.Get(9, 14))
	for _, w := range dst.Writes() {
		assert.Equal(t, 9, w.ID)
		assert.GreaterOrEqual(t, w.Addr, int(ct.EEPROMEnd))
	}
}

func TestRestore_EEPROM(t *testing.T) {
	ctx := context.Background()
	src := register.NewMock()
	src.Set(1, 3, 1)
	src.Set(1, 4, 34)
	src.Set(1, 14, 700)
	src.Set(1, 16, 1)

	snap, err := Capture(ctx, actuator.NewWithTransport(src), 1)
	require.NoError(t, err)

	dst := register.NewMock()
	_, err = Restore(ctx, actuator.NewWithTransport(dst), 9, snap, Options{EEPROM: true})
	require.NoError(t, err)

	assert.Equal(t, 700, dst.Get(9, 14))
	assert.Equal(t, 1, dst.Get(9, 16))
	for _, w := range dst.Writes() {
		assert.NotEqual(t, 3, w.Addr, "id is never restored")
		assert.NotEqual(t, 4, w.Addr, "baud rate is never restored")
	}
}

func TestRestore_AppliesPolicies(t *testing.T) {
	snap := &Snapshot{
		Model: "AX-12",
		Values: []Value{
			{Name: ct.GoalPositionL, Address: 30, Value: 5000},
			{Name: ct.TorqueEnable, Address: 24, Value: 7},
		},
	}
	dst := register.NewMock()

	written, err := Restore(context.Background(), actuator.NewWithTransport(dst), 2, snap, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1023, dst.Get(2, 30))
	assert.Equal(t, []register.MockCall{{Method: "WriteWordAt", ID: 2, Addr: 30, Value: 1023}}, dst.Writes())
	assert.Len(t, written, 2, "a dropped value still counts as handled")
}

func TestRestore_ModelMismatch(t *testing.T) {
	snap := &Snapshot{Model: "AX-12"}
	_, err := Restore(context.Background(), sensor.NewWithTransport(register.NewMock()), 100, snap, Options{})
	assert.ErrorIs(t, err, ErrModelMismatch)
}

func TestRestore_UnknownName(t *testing.T) {
	snap := &Snapshot{Model: "AX-12", Values: []Value{{Name: "present "}}}
	_, err := Restore(context.Background(), actuator.NewWithTransport(register.NewMock()), 1, snap, Options{})
	assert.ErrorIs(t, err, ct.ErrUnknownParameter)
}

func TestSensorSnapshot(t *testing.T) {
	tr := register.NewMock()
	tr.Set(100, 38, 0x1234)
	tr.Set(100, 52, 80)

	api := sensor.NewWithTransport(tr)
	snap, err := Capture(context.Background(), api, 100)
	require.NoError(t, err)
	assert.Equal(t, "AX-S1", snap.Model)

	v, ok := snap.Lookup(ct.SoundDetectedTimeL)
	require.True(t, ok)
	assert.Equal(t, 0x1234, v.Value)
	_, ok = snap.Lookup(ct.SoundDetectedTimeH)
	assert.False(t, ok)

	dst := register.NewMock()
	_, err = Restore(context.Background(), sensor.NewWithTransport(dst), 100, snap, Options{})
	require.NoError(t, err)
	assert.Equal(t, 80, dst.Get(100, 52))
	assert.Equal(t, 0x1234, dst.Get(100, 38))
}

func TestSaveLoad(t *testing.T) {
	tr := register.NewMock()
	tr.Set(1, 30, 300)
	snap, err := Capture(context.Background(), actuator.NewWithTransport(tr), 1)
	require.NoError(t, err)

	for _, name := range []string{"servo.yaml", "servo.yml", "servo.cbor", "SERVO.CBOR"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, snap))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, snap.Model, got.Model)
			assert.Equal(t, snap.ID, got.ID)
			assert.True(t, snap.Taken.Equal(got.Taken), "taken %v != %v", snap.Taken, got.Taken)
			assert.Equal(t, snap.Values, got.Values)
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, CBOR, FormatFor("a.cbor"))
	assert.Equal(t, YAML, FormatFor("a.yaml"))
	assert.Equal(t, YAML, FormatFor("a"))
}

func TestUnmarshal_Garbage(t *testing.T) {
	_, err := Unmarshal([]byte{0xFF, 0x00}, CBOR)
	assert.Error(t, err)
	_, err = Unmarshal([]byte("values: [1, 2"), YAML)
	assert.Error(t, err)
}
