package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/robot"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		in   string
		want ct.Name
	}{
		{"goal_position", ct.GoalPositionL},
		{"goal-position", ct.GoalPositionL},
		{"Goal Position(L)", ct.GoalPositionL},
		{"goal position(h)", ct.GoalPositionH},
		{"  torque_enable ", ct.TorqueEnable},
		{"id", ct.ID},
		{"firmware", ct.FirmwareVersion},
	}
	for _, tt := range tests {
		got, err := resolveName(ct.Actuator(), tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := resolveName(ct.Actuator(), "warp_speed")
	assert.ErrorIs(t, err, ct.ErrUnknownParameter)
}

func TestDeviceLabel(t *testing.T) {
	cfg := &robot.Config{Devices: []robot.DeviceConfig{{Name: "elbow", ID: 3}}}
	assert.Equal(t, "elbow (id 3)", deviceLabel(cfg, 3))
	assert.Equal(t, "id 4", deviceLabel(cfg, 4))
}

func TestRenderScan(t *testing.T) {
	out := renderScan([]scanResult{
		{port: "/dev/ttyUSB0", ids: []int{1, 2, 100}},
		{port: "/dev/ttyUSB1"},
		{port: "/dev/ttyS0", err: errors.New("permission denied")},
	})
	assert.Contains(t, out, "/dev/ttyUSB0")
	assert.Contains(t, out, "1, 2, 100")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "permission denied")
}
