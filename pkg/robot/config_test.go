package robot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/dynamixel/pkg/transport"
)

const sampleConfig = `port: /dev/ttyUSB0
baud_rate: 57142
timeout: 20ms
devices:
  - name: pan
    id: 1
    kind: actuator
    calibration:
      range_min: 200
      range_max: 800
  - name: tilt
    id: 2
  - name: head
    id: 100
    kind: sensor
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigFrom(t *testing.T) {
	cfg, err := LoadConfigFrom(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)
	assert.Equal(t, 20*time.Millisecond, cfg.Timeout)
	require.Len(t, cfg.Devices, 3)
	assert.Equal(t, KindActuator, cfg.Devices[1].Kind, "kind defaults to actuator")

	pan, ok := cfg.Device("pan")
	require.True(t, ok)
	require.NotNil(t, pan.Calibration)
	assert.Equal(t, 800, pan.Calibration.RangeMax)

	head, ok := cfg.ByID(100)
	require.True(t, ok)
	assert.Equal(t, DeviceName("head"), head.Name)

	assert.Len(t, cfg.Actuators(), 2)
	assert.Len(t, cfg.Sensors(), 1)
}

func TestConfig_Transport(t *testing.T) {
	cfg, err := LoadConfigFrom(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	tc := cfg.Transport()
	assert.Equal(t, 57142, tc.BaudRate)
	assert.Equal(t, 20*time.Millisecond, tc.Timeout)
	assert.Equal(t, 2, tc.StatusReturnLevel)
	assert.Equal(t, transport.DefaultRetries, tc.Retries)

	level := 1
	cfg.StatusReturnLevel = &level
	cfg.BaudRate = 0
	tc = cfg.Transport()
	assert.Equal(t, 1, tc.StatusReturnLevel)
	assert.Equal(t, 1000000, tc.BaudRate)
}

func TestConfig_ZeroRetries(t *testing.T) {
	cfg, err := LoadConfigFrom(writeConfig(t, "port: /dev/ttyUSB0\nretries: 0\ndevices: []\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Retries)
	assert.Equal(t, 0, cfg.Transport().Retries)

	three := 3
	cfg.Retries = &three
	assert.Equal(t, 3, cfg.Transport().Retries)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	cfg, err := LoadConfigFrom(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.SaveTo(path))

	again, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"duplicate name", "devices:\n  - {name: a, id: 1}\n  - {name: a, id: 2}\n"},
		{"duplicate id", "devices:\n  - {name: a, id: 1}\n  - {name: b, id: 1}\n"},
		{"broadcast id", "devices:\n  - {name: a, id: 254}\n"},
		{"missing name", "devices:\n  - {id: 3}\n"},
		{"unknown kind", "devices:\n  - {name: a, id: 1, kind: gripper}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFrom(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestConfig_SetDevice(t *testing.T) {
	var cfg Config
	cfg.SetDevice(DeviceConfig{Name: "pan", ID: 1, Kind: KindActuator})
	cfg.SetDevice(DeviceConfig{Name: "pan", ID: 5, Kind: KindActuator})
	cfg.SetDevice(DeviceConfig{Name: "tilt", ID: 2, Kind: KindActuator})

	require.Len(t, cfg.Devices, 2)
	assert.Equal(t, 5, cfg.Devices[0].ID)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFrom_Missing(t *testing.T) {
	_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
