package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/UNO-SOFT/zlog/v2"

	"vessel-sim/internal/cli"
	"vessel-sim/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, startGUI))
}

// run dispatches to help, the GUI or a headless check and returns the
// process exit code.
func run(args []string, stdout, stderr io.Writer, gui func()) int {
	cfg, err := cli.ParseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// No flags provided = use GUI
	if cfg == nil {
		gui()
		return 0
	}

	// CLI mode
	if err := runCLI(cfg, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrInvalidCases) {
			return 2
		}
		return 1
	}
	return 0
}

func startGUI() {
	var verbose zlog.VerboseVar
	logger := zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

	a := app.NewWithID("com.vessel-sim.gui")
	win := ui.BuildMainWindow(a, logger)
	win.ShowAndRun()
}

func runCLI(cfg *cli.RunnerConfig, stdout, stderr io.Writer) error {
	logger := zlog.NewLogger(zlog.MaybeConsoleHandler(&cfg.Verbose, stderr)).SLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := cli.NewRunner(cfg, logger).Run(ctx, stdout)
	return err
}
