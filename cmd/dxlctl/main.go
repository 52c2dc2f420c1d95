package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/gwillem/dynamixel/internal/log"
)

type GlobalOptions struct {
	Config   string `long:"config" short:"c" default:"dynamixel.yaml" description:"Configuration file"`
	Port     string `long:"port" short:"p" env:"DXL_PORT" description:"Serial port, overrides the configuration"`
	Baud     int    `long:"baud" short:"b" description:"Baud rate in bps, overrides the configuration"`
	LogLevel string `long:"log-level" default:"warn" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`
}

type Options struct {
	GlobalOptions `group:"Global Options"`

	Setup   SetupCommand   `command:"setup" description:"Find devices, name and calibrate them"`
	Scan    ScanCommand    `command:"scan" description:"Ping every ID on every serial port"`
	Ping    PingCommand    `command:"ping" description:"Ping one device"`
	Get     GetCommand     `command:"get" description:"Read a control table parameter"`
	Set     SetCommand     `command:"set" description:"Write a control table parameter"`
	Dump    DumpCommand    `command:"dump" description:"Print or save every parameter of a device"`
	Restore RestoreCommand `command:"restore" description:"Write a saved snapshot back to a device"`
	Mode    ModeCommand    `command:"mode" description:"Show or change the movement mode of an actuator"`
	Torque  TorqueCommand  `command:"torque" description:"Switch actuator torque on or off"`
	Move    MoveCommand    `command:"move" description:"Move an actuator to an angle in degrees"`
	Buzz    BuzzCommand    `command:"buzz" description:"Play a note on a sensor module buzzer"`
	Watch   WatchCommand   `command:"watch" alias:"monitor" description:"Chart actuator positions live"`
	Shell   ShellCommand   `command:"shell" description:"Interactive prompt for the commands above"`
}

var opts Options

// globals points at the global options of the invocation being executed.
var globals = &opts.GlobalOptions

func newParser(o *Options) *flags.Parser {
	p := flags.NewParser(o, flags.Default)
	p.LongDescription = "dxlctl - register-level control of Dynamixel AX actuators and sensor modules"
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		globals = &o.GlobalOptions
		log.Init(o.LogLevel)
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}
	return p
}

func main() {
	parser := newParser(&opts)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
