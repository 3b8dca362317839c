package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"graphplot/app/plot"
)

func main() {
	width := flag.Float64("width", 800, "canvas width in pixels")
	height := flag.Float64("height", 600, "canvas height in pixels")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [script]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	s, err := plot.NewSession(*width, *height, plot.WithLogger(logger))
	if err != nil {
		logger.Error("start session", slog.Any("err", err))
		os.Exit(2)
	}
	sh := NewShell(s, os.Stdout, logger)
	sh.color = term.IsTerminal(int(os.Stdout.Fd()))

	// Run a script from the command line first, if provided.
	if flag.NArg() > 0 {
		lines, err := LoadScript(flag.Arg(0))
		if err != nil {
			logger.Error("failed to open script", slog.String("path", flag.Arg(0)), slog.Any("err", err))
			os.Exit(1)
		}
		for _, line := range lines {
			if sh.Exec(line) {
				return
			}
		}
	}

	if err := sh.Run(os.Stdin, term.IsTerminal(int(os.Stdin.Fd()))); err != nil {
		logger.Error("read input", slog.Any("err", err))
		os.Exit(1)
	}
}
