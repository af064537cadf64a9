package dashboard

import (
	"context"
	"strings"

	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/output"
	"github.com/stone-age-io/termfetch/internal/probe"
	"github.com/stone-age-io/termfetch/internal/task"
)

// Button handlers run on the UI goroutine. Probes run on task workers without a
// deadline.

func (d *Dashboard) showHardware() {
	task.Go(d.runner, task.Job[collector.HardwareReport]{
		Name: "hardware",
		Busy: "loading hardware info",
		Invoke: func() collector.HardwareReport {
			return d.collector.Hardware(context.Background())
		},
		Recover: collector.FailedHardware,
	}, func(r collector.HardwareReport) {
		hardware := panelText(output.HardwareLines(r))
		disk := panelText(output.DiskLines(r))
		d.app.QueueUpdateDraw(func() {
			d.hardware.SetText(hardware)
			d.disk.SetText(disk)
		})
	})
}

func (d *Dashboard) showAddress(kind collector.AddressKind) {
	title := output.AddressTitle(kind)
	task.Go(d.runner, task.Job[collector.AddressInfo]{
		Name: "address " + string(kind),
		Busy: output.AddressBusy(kind),
		Invoke: func() collector.AddressInfo {
			return d.collector.Address(context.Background(), kind)
		},
		Recover: func(err error) collector.AddressInfo { return collector.FailedAddress(kind, err) },
	}, func(info collector.AddressInfo) {
		// private lookups show their sentinel inline; public failures keep the reason
		if kind.Public() && !info.Address.OK() {
			d.ShowError(title, "could not get address due to error: \""+info.Address.Reason()+"\"")
			return
		}
		d.ShowResult(title, info.String())
	})
}

func (d *Dashboard) runSpeedTest() {
	task.Go(d.runner, task.Job[probe.Result[collector.SpeedTestResult]]{
		Name: "speedtest",
		Busy: "running speedtest",
		Invoke: func() probe.Result[collector.SpeedTestResult] {
			return d.collector.SpeedTest(context.Background())
		},
		Recover: collector.FailedSpeedTest,
	}, func(r probe.Result[collector.SpeedTestResult]) {
		if !r.OK() {
			d.ShowError("speedtest", r.Reason())
			return
		}
		d.ShowResult(output.SpeedTestTitle(r.Value()), output.SpeedTestBody(r.Value()))
	})
}

// panelText renders lines as "label --> value" rows for a text panel
func panelText(lines []output.Line) string {
	return strings.TrimSuffix(output.Text(lines), "\n")
}
