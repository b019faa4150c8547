package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vhdlcheck/internal/driver"
	"vhdlcheck/internal/pipeline"
	"vhdlcheck/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI runs driver.CheckPaths while a Bubble Tea progress view
// consumes its events.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.CheckPaths(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := finishCheck(cancel, outcomeCh, events)
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// finishCheck waits for the worker once the view has exited. If the view quit
// before the run finished (ctrl+c), the remaining work is cancelled.
func finishCheck(cancel context.CancelFunc, outcomeCh <-chan checkOutcome, events <-chan pipeline.Event) checkOutcome {
	select {
	case outcome := <-outcomeCh:
		return outcome
	default:
	}
	cancel()
	// keep workers from blocking on a full channel
	go func() {
		for range events {
		}
	}()
	return <-outcomeCh
}
