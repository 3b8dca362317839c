package main

import (
	"fmt"
	"strconv"
	"strings"

	"graphplot/app/plot"
)

// Op identifies a shell command.
type Op int

const (
	OpNone Op = iota // blank line or comment
	OpEdit
	OpZoom
	OpMove
	OpView
	OpResize
	OpPoints
	OpEval
	OpCurve
	OpList
	OpStats
	OpSave
	OpHelp
	OpQuit
)

// Command is one parsed input line.
type Command struct {
	Op   Op
	Slot int
	Text string // OpEdit: raw slot text; OpSave: file path
	In   bool   // OpZoom: zoom in
	Args []float64
}

var commandArity = map[string]struct {
	op       Op
	min, max int
}{
	"zoom":   {OpZoom, 1, 3},
	"move":   {OpMove, 2, 2},
	"view":   {OpView, 4, 4},
	"resize": {OpResize, 2, 2},
	"points": {OpPoints, 0, 0},
	"eval":   {OpEval, 2, 2},
	"curve":  {OpCurve, 1, 2},
	"list":   {OpList, 0, 0},
	"stats":  {OpStats, 0, 0},
	"save":   {OpSave, 1, 1},
	"help":   {OpHelp, 0, 0},
	"quit":   {OpQuit, 0, 0},
	"exit":   {OpQuit, 0, 0},
}

// ParseCommand parses one shell line. Slot letters start at base.
//
// Edits are written either as a definition, "g(x)=f(x)*2", or as
// "g: f(x)*2"; "g:" alone clears slot g.
func ParseCommand(line string, base byte) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return Command{Op: OpNone}, nil
	}

	if slot, ok := slotOf(line[0], base); ok && len(line) > 1 {
		switch {
		case line[1] == ':':
			return Command{Op: OpEdit, Slot: slot, Text: strings.TrimSpace(line[2:])}, nil
		case line[1] == '(' && strings.Contains(line, "="):
			return Command{Op: OpEdit, Slot: slot, Text: line}, nil
		}
	}

	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	entry, ok := commandArity[name]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
	args := fields[1:]
	if len(args) < entry.min || len(args) > entry.max {
		return Command{}, fmt.Errorf("%s: wrong number of arguments", name)
	}
	cmd := Command{Op: entry.op}

	switch entry.op {
	case OpZoom:
		switch strings.ToLower(args[0]) {
		case "in":
			cmd.In = true
		case "out":
		default:
			return Command{}, fmt.Errorf("zoom: expected in or out, got %q", args[0])
		}
		args = args[1:]
		if len(args) == 1 {
			return Command{}, fmt.Errorf("zoom: pointer needs both px and py")
		}
	case OpSave:
		cmd.Text = args[0]
		return cmd, nil
	case OpEval, OpCurve:
		if len(args[0]) != 1 {
			return Command{}, fmt.Errorf("%s: %q is not a slot", name, args[0])
		}
		slot, ok := slotOf(args[0][0], base)
		if !ok {
			return Command{}, fmt.Errorf("%s: %q is not a slot", name, args[0])
		}
		cmd.Slot = slot
		args = args[1:]
	}

	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%s: bad number %q", name, a)
		}
		cmd.Args = append(cmd.Args, v)
	}
	return cmd, nil
}

func slotOf(ch, base byte) (int, bool) {
	if ch < base || int(ch-base) >= plot.SlotCount {
		return 0, false
	}
	return int(ch - base), true
}
