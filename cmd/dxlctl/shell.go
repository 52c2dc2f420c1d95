package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

type ShellCommand struct{}

func (c *ShellCommand) Execute(args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dxl> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	base := shellGlobals(*globals)
	fmt.Fprintln(rl.Stdout(), dimStyle.Render("Type a command, 'help' for the list or 'exit' to leave."))

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fields = []string{"--help"}
		case "shell":
			fmt.Fprintln(rl.Stdout(), "Already in the shell.")
			continue
		}

		// Errors are printed by the parser; the prompt keeps going.
		var lineOpts Options
		newParser(&lineOpts).ParseArgs(append(append([]string(nil), base...), fields...))
	}
}

// shellGlobals renders the global options of the shell invocation as flags,
// so every line starts from them and may still override them.
func shellGlobals(g GlobalOptions) []string {
	args := []string{"--config", g.Config, "--log-level", g.LogLevel}
	if g.Port != "" {
		args = append(args, "--port", g.Port)
	}
	if g.Baud > 0 {
		args = append(args, "--baud", strconv.Itoa(g.Baud))
	}
	return args
}
