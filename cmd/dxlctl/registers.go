package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/dynamixel/pkg/actuator"
	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/sensor"
)

type PingCommand struct {
	Args DeviceArg `positional-args:"yes" required:"yes"`
}

func (c *PingCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	ctx, cancel := commandContext()
	defer cancel()

	if err := chain.Bus().Ping(ctx, c.Args.ID); err != nil {
		return fmt.Errorf("ping %s: %w", deviceLabel(cfg, c.Args.ID), err)
	}
	fmt.Println(successStyle.Render(deviceLabel(cfg, c.Args.ID) + " answered"))
	return nil
}

type GetCommand struct {
	Sensor bool `long:"sensor" short:"s" description:"Use the sensor module table"`
	Args   struct {
		ID   int    `positional-arg-name:"ID" required:"yes"`
		Name string `positional-arg-name:"NAME" required:"yes" description:"Parameter, e.g. goal_position"`
	} `positional-args:"yes" required:"yes"`
}

func (c *GetCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	dev := deviceFor(chain, cfg, c.Args.ID, c.Sensor)
	name, err := resolveName(dev.Accessor().Table(), c.Args.Name)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	v, err := dev.Get(ctx, c.Args.ID, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	fmt.Printf("%s = %d\n", name, v)
	return nil
}

type SetCommand struct {
	Sensor bool `long:"sensor" short:"s" description:"Use the sensor module table"`
	Yes    bool `long:"yes" short:"y" description:"Write EEPROM parameters without asking"`
	Args   struct {
		ID    int    `positional-arg-name:"ID" required:"yes"`
		Name  string `positional-arg-name:"NAME" required:"yes"`
		Value int    `positional-arg-name:"VALUE" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (c *SetCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	dev := deviceFor(chain, cfg, c.Args.ID, c.Sensor)
	table := dev.Accessor().Table()
	name, err := resolveName(table, c.Args.Name)
	if err != nil {
		return err
	}
	entry, err := table.Lookup(name)
	if err != nil {
		return err
	}

	writable := actuator.Writable
	if _, ok := dev.(*sensor.API); ok {
		writable = sensor.Writable
	}
	if !writable(name) {
		return fmt.Errorf("%w: %q", ct.ErrReadOnly, name)
	}

	if entry.Address < ct.EEPROMEnd && !c.Yes {
		ok, err := confirm(
			fmt.Sprintf("Write %s = %d to %s?", name, c.Args.Value, deviceLabel(cfg, c.Args.ID)),
			"This is an EEPROM setting and survives power cycles.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := dev.Set(ctx, c.Args.ID, name, c.Args.Value); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	// Read back so clamped or dropped values are visible.
	v, err := dev.Get(ctx, c.Args.ID, name)
	if err != nil {
		fmt.Printf("%s written\n", name)
		return nil
	}
	fmt.Printf("%s = %d\n", name, v)
	return nil
}

// confirm asks a yes/no question. Cancelling the form counts as no; any
// other form failure, such as a missing terminal, is returned.
func confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Write").
				Negative("Cancel").
				Value(&ok),
		),
	)
	return confirmed(ok, form.Run())
}

func confirmed(ok bool, err error) (bool, error) {
	switch {
	case errors.Is(err, huh.ErrUserAborted):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}
