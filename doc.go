// Package dynamixel is register-level control for Dynamixel AX-series
// devices speaking Protocol 1.0: AX-12 actuators and AX-S1 sensor modules.
//
// # Installation
//
//	go install github.com/gwillem/dynamixel/cmd/dxlctl@latest
//
// # Usage
//
// Find, name and calibrate the devices on a bus:
//
//	dxlctl setup
//
// Read and write parameters by name:
//
//	dxlctl get 1 present_position
//	dxlctl set 1 goal_position 512
//
// Chart positions live, optionally mirroring one actuator onto another:
//
//	dxlctl watch --follow elbow:shoulder
//
// # Packages
//
//   - pkg/controltable: AX-12 and AX-S1 parameter registries
//   - pkg/protocol: instruction and status packet framing
//   - pkg/transport: half-duplex serial bus with retries
//   - pkg/register: width-dispatching register access
//   - pkg/actuator, pkg/sensor: validated per-parameter APIs
//   - pkg/robot: configuration, calibration and device chains
//   - pkg/monitor: polling loop for live views and following
//   - pkg/snapshot: control table dump and restore
//   - cmd/dxlctl: the command line tool
package dynamixel
