package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/output"
	"github.com/stone-age-io/termfetch/internal/probe"
	"github.com/stone-age-io/termfetch/internal/task"
)

// ErrProbeFailed is returned by headless commands whose result is a failure the
// dashboard would show as an error popup
var ErrProbeFailed = errors.New("probe failed")

// Hardware prints a hardware report
func (a *App) Hardware(ctx context.Context, out, errOut io.Writer, format output.Format) error {
	console := output.NewConsole(out, errOut)
	runner := task.NewRunner(console, a.logger)

	task.Go(runner, task.Job[collector.HardwareReport]{
		Name:    "hardware",
		Busy:    "loading hardware info",
		Invoke:  func() collector.HardwareReport { return a.collector.Hardware(ctx) },
		Recover: collector.FailedHardware,
	}, func(r collector.HardwareReport) {
		show(console, "hardware", func(w io.Writer) error { return output.WriteHardware(w, format, r) })
	})
	runner.Wait()

	return result(console)
}

// Address prints one address. Failed public lookups are reported as errors.
func (a *App) Address(ctx context.Context, kind collector.AddressKind, out, errOut io.Writer, format output.Format) error {
	console := output.NewConsole(out, errOut)
	runner := task.NewRunner(console, a.logger)

	task.Go(runner, task.Job[collector.AddressInfo]{
		Name:    "address " + string(kind),
		Busy:    output.AddressBusy(kind),
		Invoke:  func() collector.AddressInfo { return a.collector.Address(ctx, kind) },
		Recover: func(err error) collector.AddressInfo { return collector.FailedAddress(kind, err) },
	}, func(info collector.AddressInfo) {
		failed := kind.Public() && !info.Address.OK()
		// structured formats still carry the sentinel and reason
		if !failed || format != output.FormatText {
			show(console, "address", func(w io.Writer) error { return output.WriteAddress(w, format, info) })
		}
		if failed {
			console.ShowError(output.AddressTitle(kind), info.Address.Reason())
		}
	})
	runner.Wait()

	return result(console)
}

// SpeedTest runs a speed test and prints the throughput
func (a *App) SpeedTest(ctx context.Context, out, errOut io.Writer, format output.Format) error {
	console := output.NewConsole(out, errOut)
	runner := task.NewRunner(console, a.logger)

	task.Go(runner, task.Job[probe.Result[collector.SpeedTestResult]]{
		Name:    "speedtest",
		Busy:    "running speedtest",
		Invoke:  func() probe.Result[collector.SpeedTestResult] { return a.collector.SpeedTest(ctx) },
		Recover: collector.FailedSpeedTest,
	}, func(r probe.Result[collector.SpeedTestResult]) {
		if r.OK() || format != output.FormatText {
			show(console, "speedtest", func(w io.Writer) error { return output.WriteSpeedTest(w, format, r) })
		}
		if !r.OK() {
			console.ShowError("speedtest", r.Reason())
		}
	})
	runner.Wait()

	return result(console)
}

// show renders into a buffer so the console receives the result in one write
func show(console *output.Console, name string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		console.ShowError(name, err.Error())
		return
	}
	console.ShowResult("", buf.String())
}

func result(console *output.Console) error {
	if n := console.Errors(); n > 0 {
		return fmt.Errorf("%w: %d error(s) reported", ErrProbeFailed, n)
	}
	return nil
}
