// Package dashboard is the interactive terminal UI.
package dashboard

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/probe"
	"github.com/stone-age-io/termfetch/internal/task"
	"go.uber.org/zap"
)

const (
	title    = "TermFetch"
	mainPage = "main"
)

// Collector is what the dashboard's actions need
type Collector interface {
	Hardware(ctx context.Context) collector.HardwareReport
	Address(ctx context.Context, kind collector.AddressKind) collector.AddressInfo
	SpeedTest(ctx context.Context) probe.Result[collector.SpeedTestResult]
}

// Dashboard owns the tview application. Widgets are only touched on the UI
// goroutine; workers reach them through the Surface methods.
type Dashboard struct {
	app       *tview.Application
	pages     *tview.Pages
	buttons   []*tview.Button
	hardware  *tview.TextView
	disk      *tview.TextView
	status    *tview.TextView
	collector Collector
	runner    *task.Runner
	version   string
	logger    *zap.Logger

	// UI goroutine only
	busy    []busyModal
	popups  int
	spinner int
}

type busyModal struct {
	page    string
	modal   *tview.Modal
	message string
}

// New builds the dashboard layout
func New(c Collector, version string, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dashboard{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		collector: c,
		version:   version,
		logger:    logger,
	}
	d.runner = task.NewRunner(d, logger)

	d.pages.AddPage(mainPage, d.layout(), true, true)
	d.app.SetRoot(d.pages, true)
	d.app.SetInputCapture(d.handleKey)
	d.app.SetFocus(d.buttons[0])

	return d
}

func (d *Dashboard) layout() tview.Primitive {
	speedtest := d.button("speedtest", d.runSpeedTest)
	hardware := d.button("get hardware info", d.showHardware)
	intV4 := d.button("IPv4", func() { d.showAddress(collector.PrivateIPv4) })
	intV6 := d.button("IPv6", func() { d.showAddress(collector.PrivateIPv6) })
	extV4 := d.button("IPv4", func() { d.showAddress(collector.PublicIPv4) })
	extV6 := d.button("IPv6", func() { d.showAddress(collector.PublicIPv6) })

	d.hardware = panel("Hardware Info")
	d.disk = panel("Disk Space")

	d.status = tview.NewTextView()
	d.status.SetText(d.statusText())

	grid := tview.NewGrid().
		SetRows(3, 3, 3, 0, 1).
		SetColumns(0, 0, 0, 0, 0)
	grid.SetBorder(true)
	grid.SetTitle(title)

	grid.AddItem(speedtest, 0, 0, 1, 1, 0, 0, true)
	grid.AddItem(hardware, 0, 1, 1, 4, 0, 0, false)
	grid.AddItem(label("Internal"), 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(intV4, 1, 1, 1, 2, 0, 0, false)
	grid.AddItem(intV6, 1, 3, 1, 2, 0, 0, false)
	grid.AddItem(label("External"), 2, 0, 1, 1, 0, 0, false)
	grid.AddItem(extV4, 2, 1, 1, 2, 0, 0, false)
	grid.AddItem(extV6, 2, 3, 1, 2, 0, 0, false)
	grid.AddItem(d.hardware, 3, 0, 1, 3, 0, 0, false)
	grid.AddItem(d.disk, 3, 3, 1, 2, 0, 0, false)
	grid.AddItem(d.status, 4, 0, 1, 5, 0, 0, false)

	return grid
}

func (d *Dashboard) button(text string, selected func()) *tview.Button {
	b := tview.NewButton(text).SetSelectedFunc(selected)
	d.buttons = append(d.buttons, b)
	return b
}

func panel(name string) *tview.TextView {
	v := tview.NewTextView()
	v.SetBorder(true)
	v.SetTitle(name)
	return v
}

func label(text string) *tview.TextView {
	return tview.NewTextView().
		SetText(text).
		SetTextAlign(tview.AlignCenter)
}

// handleKey implements the global keys: q quits, Tab and Backtab cycle the
// buttons while no popup is open
func (d *Dashboard) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && (event.Rune() == 'q' || event.Rune() == 'Q') {
		d.app.Stop()
		return nil
	}

	if front, _ := d.pages.GetFrontPage(); front != mainPage {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		d.moveFocus(1)
		return nil
	case tcell.KeyBacktab:
		d.moveFocus(-1)
		return nil
	}
	return event
}

func (d *Dashboard) moveFocus(step int) {
	current := 0
	for i, b := range d.buttons {
		if b.HasFocus() {
			current = i
			break
		}
	}
	next := (current + step + len(d.buttons)) % len(d.buttons)
	d.app.SetFocus(d.buttons[next])
}

// Run shows the dashboard until the user quits or ctx is cancelled. Tasks still
// running when it returns are abandoned.
func (d *Dashboard) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			d.app.Stop()
		case <-stop:
		}
	}()

	d.logger.Info("Dashboard started", zap.String("version", d.version))
	if err := d.app.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	d.logger.Info("Dashboard stopped", zap.Int("tasks_in_flight", d.runner.InFlight()))
	return nil
}

// Stop ends Run
func (d *Dashboard) Stop() {
	d.app.Stop()
}
