package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type runState int

const (
	stateIdle runState = iota
	stateRunning
)

// Job is the background part of a run. It reports progress as done out of
// total steps and must return promptly once ctx is canceled.
type Job func(ctx context.Context, progress func(done, total int)) error

// Controls manages the Start/Stop buttons, the status bar and the
// background execution of a screen's job.
type Controls struct {
	mu     sync.Mutex
	state  runState
	cancel context.CancelFunc
	done   chan struct{}

	startBtn *widget.Button
	stopBtn  *widget.Button

	status   *widget.Label
	progress *widget.ProgressBar
	percent  *widget.Label
	bar      *fyne.Container

	outputView *OutputView
	logger     *slog.Logger
}

// NewControls creates the control buttons. onStart is called on the UI
// goroutine when Start is tapped.
func NewControls(onStart func(), ov *OutputView, logger *slog.Logger) *Controls {
	c := &Controls{outputView: ov, logger: logger}

	c.startBtn = widget.NewButton("Start", onStart)
	c.startBtn.Importance = widget.HighImportance
	c.stopBtn = widget.NewButton("Stop", c.Stop)
	c.stopBtn.Disable()

	c.status = widget.NewLabel("Ready")
	c.progress = widget.NewProgressBar()
	c.progress.TextFormatter = func() string { return "" }
	c.percent = widget.NewLabel("0%")
	c.bar = container.NewBorder(nil, nil, c.status, c.percent, c.progress)

	return c
}

// StartButton returns the Start button.
func (c *Controls) StartButton() *widget.Button { return c.startBtn }

// StopButton returns the Stop button.
func (c *Controls) StopButton() *widget.Button { return c.stopBtn }

// StatusBar returns the status label, progress bar and percent label.
func (c *Controls) StatusBar() *fyne.Container { return c.bar }

// SetStatus shows a status message, safe to call from any goroutine.
func (c *Controls) SetStatus(msg string) {
	fyne.Do(func() { c.status.SetText(msg) })
}

// Running reports whether a job is in progress.
func (c *Controls) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateRunning
}

// Run starts job in the background under name unless another job is
// running. It reports whether the job was started.
func (c *Controls) Run(name string, job Job) bool {
	c.mu.Lock()
	if c.state == stateRunning {
		c.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.state = stateRunning
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	c.startBtn.Disable()
	c.stopBtn.Enable()
	c.setProgress(0, 1)
	c.SetStatus(name + "...")
	c.logger.Info("run started", "job", name)

	go func() {
		defer close(done)
		defer c.resetState()

		err := job(ctx, c.setProgress)
		switch {
		case errors.Is(err, context.Canceled) || ctx.Err() != nil:
			c.outputView.AppendLine(name + " cancelled.")
			c.SetStatus("Cancelled")
			c.logger.Info("run cancelled", "job", name)
		case err != nil:
			c.outputView.AppendLine(fmt.Sprintf("Error: %v", err))
			c.SetStatus("Failed")
			c.logger.Error("run failed", "job", name, "error", err)
		default:
			c.SetStatus("Done")
			c.logger.Info("run finished", "job", name)
		}
	}()
	return true
}

// Stop cancels the running job, if any.
func (c *Controls) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// Wait blocks until the running job, if any, has finished.
func (c *Controls) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controls) setProgress(done, total int) {
	if total <= 0 {
		total = 1
	}
	frac := float64(done) / float64(total)
	fyne.Do(func() {
		c.progress.SetValue(frac)
		c.percent.SetText(fmt.Sprintf("%.0f%%", frac*100))
	})
}

func (c *Controls) resetState() {
	c.mu.Lock()
	c.state = stateIdle
	c.cancel = nil
	c.mu.Unlock()
	fyne.Do(func() {
		c.startBtn.Enable()
		c.stopBtn.Disable()
	})
}
