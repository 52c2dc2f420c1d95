package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/dynamixel/pkg/transport"
)

type ScanCommand struct {
	From   int  `long:"from" default:"0" description:"First ID to ping"`
	To     int  `long:"to" default:"253" description:"Last ID to ping"`
	Native bool `long:"native" description:"Ping through the built-in transport instead of the feetech bus"`
}

type scanResult struct {
	port string
	ids  []int
	err  error
}

func (c *ScanCommand) Execute(args []string) error {
	ports, err := scanPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return nil
	}

	baud := globals.Baud
	if baud == 0 {
		baud = transport.BaudRateFromNumber(transport.DefaultBaudNumber)
	}

	fmt.Printf("Scanning IDs %d-%d at %d bps...\n\n", c.From, c.To, baud)

	var results []scanResult
	for _, port := range ports {
		var r scanResult
		if c.Native {
			r = scanNative(port, baud, c.From, c.To)
		} else {
			r = scanFeetech(port, baud, c.From, c.To)
		}
		results = append(results, r)
	}

	fmt.Println(renderScan(results))
	return nil
}

// scanPorts returns the ports to scan: the --port flag when set, every
// system port otherwise.
func scanPorts() ([]string, error) {
	if globals.Port != "" {
		return []string{globals.Port}, nil
	}
	ports, err := transport.ListPorts()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		out = append(out, port)
	}
	return out, nil
}

// scanFeetech pings through the feetech bus. Its PING frame is byte for
// byte the Protocol 1.0 frame, so AX devices answer it.
func scanFeetech(port string, baud, from, to int) scanResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: baud,
		Protocol: feetech.ProtocolSTS,
		Timeout:  20 * time.Millisecond,
	})
	if err != nil {
		return scanResult{port: port, err: err}
	}
	defer bus.Close()

	found, err := bus.Scan(ctx, from, to)
	if err != nil {
		return scanResult{port: port, err: err}
	}
	r := scanResult{port: port}
	for _, s := range found {
		r.ids = append(r.ids, s.ID)
	}
	return r
}

func scanNative(port string, baud, from, to int) scanResult {
	cfg := transport.DefaultConfig(port)
	cfg.BaudRate = baud
	cfg.Timeout = 20 * time.Millisecond
	cfg.Retries = 0

	bus, err := transport.Open(cfg)
	if err != nil {
		return scanResult{port: port, err: err}
	}
	defer bus.Close()

	ids, err := pingRange(bus, from, to)
	return scanResult{port: port, ids: ids, err: err}
}

type pinger interface {
	Ping(ctx context.Context, id int) error
}

func pingRange(bus pinger, from, to int) ([]int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var ids []int
	for id := max(from, 0); id <= min(to, 253); id++ {
		if err := ctx.Err(); err != nil {
			return ids, err
		}
		if bus.Ping(ctx, id) == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func renderScan(results []scanResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		var found string
		switch {
		case r.err != nil:
			found = errorStyle.Render(r.err.Error())
		case len(r.ids) == 0:
			found = dimStyle.Render("none")
		default:
			ids := make([]string, len(r.ids))
			for i, id := range r.ids {
				ids[i] = strconv.Itoa(id)
			}
			found = successStyle.Render(strings.Join(ids, ", "))
		}
		rows = append(rows, []string{r.port, found})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Port", "Devices").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
