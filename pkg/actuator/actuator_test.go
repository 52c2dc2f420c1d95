package actuator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/register"
)

const servo = 4

func newTestAPI() (*API, *register.Mock) {
	tr := register.NewMock()
	return NewWithTransport(tr), tr
}

func TestClampPolicies(t *testing.T) {
	type setter func(*API, context.Context, int, int) error

	tests := []struct {
		name   string
		set    setter
		addr   int
		lo, hi int
	}{
		{"id", (*API).SetID, 3, 0, 254},
		{"baud rate", (*API).SetBaudRate, 4, 0, 254},
		{"return delay time", (*API).SetReturnDelayTime, 5, 0, 254},
		{"lowest limit voltage", (*API).SetLowestLimitVoltage, 12, 50, 250},
		{"highest limit voltage", (*API).SetHighestLimitVoltage, 13, 50, 250},
		{"max torque", (*API).SetMaxTorque, 14, 0, 1023},
		{"cw compliance margin", (*API).SetCWComplianceMargin, 26, 0, 255},
		{"ccw compliance margin", (*API).SetCCWComplianceMargin, 27, 0, 255},
		{"goal position", (*API).SetGoalPosition, 30, 0, 1023},
		{"torque limit", (*API).SetTorqueLimit, 34, 0, 1023},
		{"punch", (*API).SetPunch, 48, 32, 1023},
	}

	inputs := []int{-100000, -1, 0, 1, 31, 32, 49, 50, 128, 250, 251, 254, 255, 256, 1023, 1024, 2000, 70000}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range inputs {
				api, tr := newTestAPI()
				require.NoError(t, tt.set(api, context.Background(), servo, v))

				writes := tr.Writes()
				require.Len(t, writes, 1, "input %d", v)
				assert.Equal(t, tt.addr, writes[0].Addr)
				assert.Equal(t, clamp(v, tt.lo, tt.hi), writes[0].Value, "input %d", v)
				assert.GreaterOrEqual(t, writes[0].Value, tt.lo)
				assert.LessOrEqual(t, writes[0].Value, tt.hi)
			}
		})
	}
}

func TestSetMaxTorque_Examples(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{512, 512},
		{1023, 1023},
		{5000, 1023},
	}
	for _, tt := range tests {
		api, tr := newTestAPI()
		require.NoError(t, api.SetMaxTorque(context.Background(), servo, tt.in))
		assert.Equal(t, tt.want, tr.Get(servo, 14), "SetMaxTorque(%d)", tt.in)
	}
}

func TestSetGoalPosition_ClampsAndUsesWord(t *testing.T) {
	api, tr := newTestAPI()

	require.NoError(t, api.SetGoalPosition(context.Background(), servo, 2000))

	assert.Equal(t, []register.MockCall{
		{Method: "WriteWordAt", ID: servo, Addr: 30, Value: 1023},
	}, tr.Calls())
}

func TestID_UsesBytePath(t *testing.T) {
	api, tr := newTestAPI()
	tr.Set(servo, 3, servo)

	got, err := api.ID(context.Background(), servo)
	require.NoError(t, err)
	assert.Equal(t, servo, got)
	require.NoError(t, api.SetID(context.Background(), servo, 7))

	for _, c := range tr.Calls() {
		assert.Contains(t, []string{"ReadByteAt", "WriteByteAt"}, c.Method)
	}
}

func TestSetStatusReturnLevel(t *testing.T) {
	for _, v := range []int{0, 1, 2, 3} {
		api, tr := newTestAPI()
		require.NoError(t, api.SetStatusReturnLevel(context.Background(), servo, v))
		require.Len(t, tr.Writes(), 1)
		assert.Equal(t, v, tr.Writes()[0].Value)
	}

	for _, v := range []int{-1, 4, 255, -1000} {
		api, tr := newTestAPI()
		err := api.SetStatusReturnLevel(context.Background(), servo, v)
		assert.NoError(t, err, "rejected values are dropped silently")
		assert.Empty(t, tr.Calls(), "SetStatusReturnLevel(%d) touched the bus", v)
	}
}

func TestFlagSetters(t *testing.T) {
	type setter func(*API, context.Context, int, int) error

	tests := []struct {
		name string
		set  setter
		addr int
	}{
		{"alarm led", (*API).SetAlarmLED, 17},
		{"torque enable", (*API).SetTorqueEnable, 24},
		{"lock", (*API).SetLock, 47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []int{0, 1} {
				api, tr := newTestAPI()
				require.NoError(t, tt.set(api, context.Background(), servo, v))
				assert.Equal(t, []register.MockCall{{Method: "WriteByteAt", ID: servo, Addr: tt.addr, Value: v}}, tr.Calls())
			}
			for _, v := range []int{-1, 2, 255} {
				api, tr := newTestAPI()
				require.NoError(t, tt.set(api, context.Background(), servo, v))
				assert.Empty(t, tr.Calls(), "value %d should be dropped", v)
			}
		})
	}
}

func TestPassThroughSetters(t *testing.T) {
	type setter func(*API, context.Context, int, int) error

	tests := []struct {
		name string
		set  setter
		addr int
	}{
		{"highest limit temperature", (*API).SetHighestLimitTemperature, 11},
		{"alarm shutdown", (*API).SetAlarmShutdown, 18},
		{"led", (*API).SetLED, 25},
	}

	for _, tt := range tests {
		for _, v := range []int{-3, 0, 70, 300} {
			api, tr := newTestAPI()
			require.NoError(t, tt.set(api, context.Background(), servo, v))
			assert.Equal(t, v, tr.Get(servo, tt.addr), "%s(%d)", tt.name, v)
		}
	}
}

func TestComplianceSlope(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 0},
		{0, 0},
		{32, 32},
		{255, 255},
		// Values past the byte range land on 254, not 255.
		{256, 254},
		{1000, 254},
	}
	for _, tt := range tests {
		api, tr := newTestAPI()
		require.NoError(t, api.SetCWComplianceSlope(context.Background(), servo, tt.in))
		require.NoError(t, api.SetCCWComplianceSlope(context.Background(), servo, tt.in))
		assert.Equal(t, tt.want, tr.Get(servo, 28), "cw slope %d", tt.in)
		assert.Equal(t, tt.want, tr.Get(servo, 29), "ccw slope %d", tt.in)
	}
}

func TestAngleLimits_FloorOnly(t *testing.T) {
	api, tr := newTestAPI()
	ctx := context.Background()

	require.NoError(t, api.SetCWAngleLimit(ctx, servo, -10))
	require.NoError(t, api.SetCCWAngleLimit(ctx, servo, 4095))

	assert.Equal(t, 0, tr.Get(servo, 6))
	assert.Equal(t, 4095, tr.Get(servo, 8))
	for _, w := range tr.Writes() {
		assert.Equal(t, "WriteWordAt", w.Method)
	}
}

// The moving speed floor raises low values instead of capping high ones.
func TestSetMovingSpeed(t *testing.T) {
	tests := []struct {
		name    string
		cw, ccw int
		in      int
		want    int
	}{
		{"joint raises low value", 0, 1023, 300, 1023},
		{"joint keeps high value", 1, 1023, 1500, 1500},
		{"wheel raises low value", 0, 0, 300, 2047},
		{"wheel keeps high value", 0, 0, 3000, 3000},
		{"negative becomes zero in wheel", 0, 0, -5, 0},
		{"negative becomes zero in joint", 0, 1023, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, tr := newTestAPI()
			tr.Set(servo, 6, tt.cw)
			tr.Set(servo, 8, tt.ccw)

			require.NoError(t, api.SetMovingSpeed(context.Background(), servo, tt.in))

			writes := tr.Writes()
			require.Len(t, writes, 1)
			assert.Equal(t, register.MockCall{Method: "WriteWordAt", ID: servo, Addr: 32, Value: tt.want}, writes[0])
		})
	}
}

func TestSetMovingSpeed_NegativeSkipsModeRead(t *testing.T) {
	api, tr := newTestAPI()
	require.NoError(t, api.SetMovingSpeed(context.Background(), servo, -1))
	assert.Len(t, tr.Calls(), 1)
}

func TestSetMovingSpeed_ModeReadError(t *testing.T) {
	errWire := errors.New("timeout")
	api, tr := newTestAPI()
	tr.Err = errWire

	err := api.SetMovingSpeed(context.Background(), servo, 100)
	assert.ErrorIs(t, err, errWire)
	assert.Empty(t, tr.Writes())
}

func TestReads_ReturnRawValues(t *testing.T) {
	type getter func(*API, context.Context, int) (int, error)

	tests := []struct {
		name string
		get  getter
		addr int
	}{
		{"model number", (*API).ModelNumber, 0},
		{"firmware", (*API).FirmwareVersion, 2},
		{"present position", (*API).PresentPosition, 36},
		{"present speed", (*API).PresentSpeed, 38},
		{"present load", (*API).PresentLoad, 40},
		{"present voltage", (*API).PresentVoltage, 42},
		{"present temperature", (*API).PresentTemperature, 43},
		{"punch", (*API).Punch, 48},
	}

	for _, tt := range tests {
		api, tr := newTestAPI()
		// Out of range on purpose: reads are not validated.
		tr.Set(servo, tt.addr, 70000)
		got, err := tt.get(api, context.Background(), servo)
		require.NoError(t, err)
		assert.Equal(t, 70000, got, tt.name)
		assert.Equal(t, tt.addr, tr.Calls()[0].Addr, tt.name)
	}
}

func TestPresentVoltage_TruncatedKeyIsUnknown(t *testing.T) {
	api, tr := newTestAPI()
	tr.Set(servo, 42, 115)

	v, err := api.PresentVoltage(context.Background(), servo)
	require.NoError(t, err)
	assert.Equal(t, 115, v)

	_, err = api.Get(context.Background(), servo, "present ")
	assert.ErrorIs(t, err, ct.ErrUnknownParameter)
	assert.Len(t, tr.Calls(), 1, "unknown name must not reach the bus")
}

func TestTransportErrorIsReturnedUnchanged(t *testing.T) {
	errWire := errors.New("checksum mismatch")
	api, tr := newTestAPI()
	tr.Err = errWire

	_, err := api.PresentPosition(context.Background(), servo)
	assert.Same(t, errWire, err)
	assert.Same(t, errWire, api.SetGoalPosition(context.Background(), servo, 10))
}

func TestGetSetByName(t *testing.T) {
	ctx := context.Background()
	api, tr := newTestAPI()

	require.NoError(t, api.Set(ctx, servo, ct.GoalPositionL, 5000))
	assert.Equal(t, 1023, tr.Get(servo, 30), "by-name writes keep the clamp")

	got, err := api.Get(ctx, servo, ct.GoalPositionL)
	require.NoError(t, err)
	assert.Equal(t, 1023, got)

	tr.Reset()
	require.NoError(t, api.Set(ctx, servo, ct.StatusReturnLevel, 9))
	assert.Empty(t, tr.Calls())

	err = api.Set(ctx, servo, ct.PresentPositionL, 1)
	assert.ErrorIs(t, err, ct.ErrReadOnly)

	err = api.Set(ctx, servo, ct.GoalPositionH, 1)
	assert.ErrorIs(t, err, ct.ErrReadOnly)

	err = api.Set(ctx, servo, "present ", 1)
	assert.ErrorIs(t, err, ct.ErrUnknownParameter)

	_, err = api.Get(ctx, servo, "present ")
	assert.ErrorIs(t, err, ct.ErrUnknownParameter)

	tr.Set(servo, 31, 3)
	got, err = api.Get(ctx, servo, ct.GoalPositionH)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestWritable(t *testing.T) {
	assert.True(t, Writable(ct.GoalPositionL))
	assert.True(t, Writable(ct.Lock))
	assert.False(t, Writable(ct.PresentLoadL))
	assert.False(t, Writable(ct.MaxTorqueH))
	assert.False(t, Writable("nope"))
}

func TestEveryTableEntryIsReachableByName(t *testing.T) {
	api, _ := newTestAPI()
	for _, name := range ct.Actuator().Names() {
		_, err := api.Get(context.Background(), servo, name)
		assert.NoError(t, err, name)
	}
}
