package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"astpretty/internal/driver"
	"astpretty/internal/ui"
)

type runOutcome struct {
	result driver.Result
	err    error
}

// runWithUI runs the driver while a progress view draws on stderr. The
// renderings are returned, not printed, so they never interleave with the view.
func runWithUI(ctx context.Context, title string, req *driver.Request) (driver.Result, error) {
	if req == nil {
		return driver.Result{}, fmt.Errorf("missing request")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Run(ctx, &reqCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// the view closes only after the outcome was sent, unless the user quit
	var outcome runOutcome
	select {
	case outcome = <-outcomeCh:
	default:
		cancel()
		go func() {
			for range events {
			}
		}()
		outcome = <-outcomeCh
		if outcome.err == nil {
			outcome.err = context.Canceled
		}
	}
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
