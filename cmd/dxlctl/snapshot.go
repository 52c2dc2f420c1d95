package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	ct "github.com/gwillem/dynamixel/pkg/controltable"
	"github.com/gwillem/dynamixel/pkg/snapshot"
)

type DumpCommand struct {
	Sensor bool      `long:"sensor" short:"s" description:"Use the sensor module table"`
	Output string    `long:"output" short:"o" description:"Save to a .yaml or .cbor file instead of printing"`
	Args   DeviceArg `positional-args:"yes" required:"yes"`
}

func (c *DumpCommand) Execute(args []string) error {
	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	ctx, cancel := commandContext()
	defer cancel()

	dev := deviceFor(chain, cfg, c.Args.ID, c.Sensor)
	snap, err := snapshot.Capture(ctx, dev, c.Args.ID)
	if err != nil {
		return fmt.Errorf("dump %s: %w", deviceLabel(cfg, c.Args.ID), err)
	}

	if c.Output != "" {
		if err := snapshot.Save(c.Output, snap); err != nil {
			return err
		}
		fmt.Printf("Saved %d parameters of %s to %s\n", len(snap.Values), deviceLabel(cfg, c.Args.ID), c.Output)
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s, %s", deviceLabel(cfg, c.Args.ID), snap.Model)))
	fmt.Println(renderSnapshot(dev.Accessor().Table(), snap))
	return nil
}

func renderSnapshot(tbl *ct.Registry, snap *snapshot.Snapshot) string {
	rows := make([][]string, 0, len(snap.Values))
	for _, v := range snap.Values {
		access, width := "", ""
		if e, err := tbl.Lookup(v.Name); err == nil {
			access, width = e.Access.String(), e.Width.String()
		}
		area := "RAM"
		if ct.Address(v.Address) < ct.EEPROMEnd {
			area = "EEPROM"
		}
		rows = append(rows, []string{
			strconv.Itoa(v.Address),
			string(v.Name),
			strconv.Itoa(v.Value),
			width,
			access,
			area,
		})
	}

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Addr", "Parameter", "Value", "Width", "Access", "Area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 1:
				return nameStyle
			case col == 2:
				return valueStyle
			case col >= 3:
				return dimStyle.Padding(0, 1)
			default:
				return cellStyle
			}
		}).
		Render()
}

type RestoreCommand struct {
	Sensor bool `long:"sensor" short:"s" description:"Use the sensor module table"`
	EEPROM bool `long:"eeprom" description:"Also restore EEPROM settings (never ID or baud rate)"`
	Yes    bool `long:"yes" short:"y" description:"Do not ask before writing EEPROM settings"`
	Args   struct {
		ID   int    `positional-arg-name:"ID" required:"yes"`
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (c *RestoreCommand) Execute(args []string) error {
	snap, err := snapshot.Load(c.Args.File)
	if err != nil {
		return err
	}

	chain, cfg, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	if c.EEPROM && !c.Yes {
		ok, err := confirm(
			fmt.Sprintf("Restore EEPROM settings of %s from %s?", deviceLabel(cfg, c.Args.ID), c.Args.File),
			"EEPROM settings survive power cycles.",
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

	dev := deviceFor(chain, cfg, c.Args.ID, c.Sensor)
	written, err := snapshot.Restore(ctx, dev, c.Args.ID, snap, snapshot.Options{EEPROM: c.EEPROM})
	if err != nil {
		return fmt.Errorf("restore %s after %d parameters: %w", deviceLabel(cfg, c.Args.ID), len(written), err)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Restored %d parameters to %s", len(written), deviceLabel(cfg, c.Args.ID))))
	return nil
}
