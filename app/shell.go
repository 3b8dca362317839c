package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"graphplot/app/lang"
	"graphplot/app/plot"
)

const helpText = `commands:
  f(x)=<expr>             define slot f (slots f..o)
  g: <expr>               set slot g; "g:" clears it
  zoom in|out [px py]     zoom about a pixel, default the canvas centre
  move dx dy              drag the view by pixels
  view minX maxX minY maxY
  resize width height
  points                  list special points
  eval f x                evaluate slot f at x
  curve f [pixelStep]     sample slot f across the canvas
  list                    show all slots
  stats                   evaluation cache counters
  save file.png|svg|pdf   render the visible curves
  quit`

// Shell drives a Session from text commands.
type Shell struct {
	s     *plot.Session
	out   io.Writer
	log   *slog.Logger
	hl    Highlighter
	color bool
}

// NewShell returns a shell printing to out.
func NewShell(s *plot.Session, out io.Writer, logger *slog.Logger) *Shell {
	return &Shell{
		s:   s,
		out: out,
		log: logger.With(slog.String("component", "shell")),
		hl:  newHighlighter(s.Registry().Name(0), lang.Variable),
	}
}

// Run executes lines from r until EOF or quit.
func (sh *Shell) Run(r io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(r)
	for {
		if prompt {
			fmt.Fprint(sh.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if sh.Exec(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Exec runs one command line and reports whether the shell should quit.
func (sh *Shell) Exec(line string) (quit bool) {
	cmd, err := ParseCommand(line, sh.s.Registry().Name(0))
	if err != nil {
		sh.fail(err)
		return false
	}
	if err := sh.apply(cmd); err != nil {
		sh.fail(err)
	}
	if cmd.Op != OpNone && sh.s.Tick() {
		sh.log.Info("cache", slog.String("stats", sh.s.CacheStats().String()))
	}
	return cmd.Op == OpQuit
}

func (sh *Shell) apply(cmd Command) error {
	v := sh.s.Viewport()
	switch cmd.Op {
	case OpNone, OpQuit:
	case OpHelp:
		fmt.Fprintln(sh.out, helpText)
	case OpEdit:
		if err := sh.s.SetText(cmd.Slot, cmd.Text); err != nil {
			return err
		}
		sh.printSlot(cmd.Slot)
		// Dependent slots were recompiled too.
		for _, d := range sh.s.Resolver().PropagationOrder(cmd.Slot) {
			sh.printSlot(d)
		}
	case OpZoom:
		px, py := v.Width/2, v.Height/2
		if len(cmd.Args) == 2 {
			px, py = cmd.Args[0], cmd.Args[1]
		}
		if !sh.s.Zoom(px, py, cmd.In) {
			return fmt.Errorf("zoom limit reached")
		}
		sh.printView()
	case OpMove:
		sh.s.Move(cmd.Args[0], cmd.Args[1])
		sh.printView()
	case OpView:
		if err := sh.s.SetViewport(cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3]); err != nil {
			return err
		}
		sh.printView()
	case OpResize:
		if err := sh.s.Resize(cmd.Args[0], cmd.Args[1]); err != nil {
			return err
		}
		sh.printView()
	case OpPoints:
		sh.printPoints()
	case OpEval:
		name := sh.s.Registry().Name(cmd.Slot)
		y, ok := sh.s.Evaluate(cmd.Slot, cmd.Args[0])
		if !ok {
			fmt.Fprintf(sh.out, "%c(%v) undefined\n", name, cmd.Args[0])
			return nil
		}
		fmt.Fprintf(sh.out, "%c(%v) = %v\n", name, cmd.Args[0], y)
	case OpCurve:
		step := 50.0
		if len(cmd.Args) == 1 {
			step = cmd.Args[0]
		}
		curve, err := sh.s.Curve(cmd.Slot, step)
		if err != nil {
			return err
		}
		for _, p := range curve {
			if p.OK {
				fmt.Fprintf(sh.out, "%v\t%v\n", p.X, p.Y)
			} else {
				fmt.Fprintf(sh.out, "%v\t-\n", p.X)
			}
		}
	case OpList:
		for i := 0; i < plot.SlotCount; i++ {
			if sh.s.Status(i) != lang.StatusEmpty {
				sh.printSlot(i)
			}
		}
	case OpStats:
		fmt.Fprintln(sh.out, sh.s.CacheStats())
	case OpSave:
		if err := Render(sh.s, cmd.Text, 2); err != nil {
			return err
		}
		fmt.Fprintln(sh.out, "saved", cmd.Text)
	}
	return nil
}

func (sh *Shell) printSlot(i int) {
	reg := sh.s.Registry()
	name := reg.Name(i)
	fn, err := reg.Get(i)
	if err != nil {
		sh.fail(err)
		return
	}
	switch fn.Status {
	case lang.StatusEmpty:
		fmt.Fprintf(sh.out, "%c: empty\n", name)
	case lang.StatusValid:
		fmt.Fprintf(sh.out, "%c(%s) = %s%s\n", name, lang.Variable, sh.source(fn.Source), sh.s.ConstantDisplayString(i))
	default:
		if fn.Err != nil {
			sh.printError(fmt.Sprintf("%c: %s: %v", name, fn.Status, fn.Err))
		} else {
			sh.printError(fmt.Sprintf("%c: %s", name, fn.Status))
		}
	}
}

func (sh *Shell) printPoints() {
	points := sh.s.Points()
	if len(points) == 0 {
		fmt.Fprintln(sh.out, "no special points")
		return
	}
	for _, p := range points {
		fmt.Fprintf(sh.out, "%c %s\n", sh.s.Registry().Name(p.Index), p)
	}
}

func (sh *Shell) printView() {
	v := sh.s.Viewport()
	fmt.Fprintf(sh.out, "view x [%g, %g] y [%g, %g]\n", v.MinX, v.MaxX, v.MinY, v.MaxY)
}

func (sh *Shell) source(src string) string {
	if sh.color {
		return sh.hl.Colorize(src)
	}
	return src
}

func (sh *Shell) fail(err error) {
	sh.printError("error: " + err.Error())
}

func (sh *Shell) printError(msg string) {
	if sh.color {
		msg = errColor + msg + ansiReset
	}
	fmt.Fprintln(sh.out, msg)
}
