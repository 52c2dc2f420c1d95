package main

import (
	"fmt"
	"time"

	"github.com/gwillem/dynamixel/pkg/actuator"
)

type ModeCommand struct {
	CW   int `long:"cw" default:"0" description:"CW angle limit for joint mode"`
	CCW  int `long:"ccw" default:"1023" description:"CCW angle limit for joint mode"`
	Args struct {
		ID   int    `positional-arg-name:"ID" required:"yes"`
		Mode string `positional-arg-name:"MODE" choice:"wheel" choice:"joint" description:"New mode; omit to show the current one"`
	} `positional-args:"yes"`
}

func (c *ModeCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	ctx, cancel := commandContext()
	defer cancel()

	api := chain.Actuator()
	id := c.Args.ID

	if c.Args.Mode != "" {
		mode, err := actuator.ParseMode(c.Args.Mode)
		if err != nil {
			return err
		}
		if mode == actuator.Wheel {
			err = api.ToggleWheelMode(ctx, id)
		} else {
			err = api.ToggleJointMode(ctx, id, c.CW, c.CCW)
		}
		if err != nil {
			return fmt.Errorf("set mode of %s: %w", deviceLabel(cfg, id), err)
		}
	}

	mode, err := api.MovementMode(ctx, id)
	if err != nil {
		return fmt.Errorf("read mode of %s: %w", deviceLabel(cfg, id), err)
	}
	fmt.Printf("%s: %s mode\n", deviceLabel(cfg, id), mode)
	return nil
}

type TorqueCommand struct {
	Args struct {
		ID    int    `positional-arg-name:"ID" required:"yes"`
		State string `positional-arg-name:"STATE" choice:"on" choice:"off" choice:"toggle" description:"Omit to show the current state"`
	} `positional-args:"yes"`
}

func (c *TorqueCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	ctx, cancel := commandContext()
	defer cancel()

	api := chain.Actuator()
	id := c.Args.ID

	switch c.Args.State {
	case "on":
		err = api.SetTorqueEnable(ctx, id, 1)
	case "off":
		err = api.SetTorqueEnable(ctx, id, 0)
	case "toggle":
		err = api.TorqueEnableSwitch(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("torque %s: %w", deviceLabel(cfg, id), err)
	}

	on, err := api.TorqueEnable(ctx, id)
	if err != nil {
		return err
	}
	state := "off"
	if on > 0 {
		state = "on"
	}
	fmt.Printf("%s: torque %s\n", deviceLabel(cfg, id), state)
	return nil
}

type MoveCommand struct {
	Speed int  `long:"speed" description:"Moving speed to set first"`
	Wait  bool `long:"wait" short:"w" description:"Wait until the actuator stops"`
	Args  struct {
		ID      int `positional-arg-name:"ID" required:"yes"`
		Degrees int `positional-arg-name:"DEGREES" required:"yes" description:"Goal angle, 0-296"`
	} `positional-args:"yes" required:"yes"`
}

func (c *MoveCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	ctx, cancel := commandContext()
	defer cancel()

	api := chain.Actuator()
	id := c.Args.ID

	if c.Speed != 0 {
		if err := api.SetMovingSpeed(ctx, id, c.Speed); err != nil {
			return fmt.Errorf("set speed: %w", err)
		}
	}
	if err := api.SetGoalPositionAngular(ctx, id, c.Args.Degrees); err != nil {
		return fmt.Errorf("move %s: %w", deviceLabel(cfg, id), err)
	}

	if c.Wait {
		// Give the actuator a moment to raise its moving flag.
		time.Sleep(20 * time.Millisecond)
		for {
			moving, err := api.IsMoving(ctx, id)
			if err != nil {
				return err
			}
			if !moving {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
	}

	deg, err := api.PresentPositionAngular(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s: at %d degrees\n", deviceLabel(cfg, id), deg)
	return nil
}

type BuzzCommand struct {
	Time int `long:"time" short:"t" default:"5" description:"Ringing time in units of 0.1s"`
	Args struct {
		ID   int `positional-arg-name:"ID" required:"yes"`
		Note int `positional-arg-name:"NOTE" required:"yes" description:"Note 0-51"`
	} `positional-args:"yes" required:"yes"`
}

func (c *BuzzCommand) Execute(args []string) error {
	chain, _, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	ctx, cancel := commandContext()
	defer cancel()

	api := chain.Sensor()
	if err := api.SetBuzzerRingingTime(ctx, c.Args.ID, c.Time); err != nil {
		return err
	}
	return api.PlayBuzzerNote(ctx, c.Args.ID, c.Args.Note)
}
