package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/probe"
)

type fakeCollector struct {
	// hold blocks Address for a kind until the channel is closed
	hold      map[collector.AddressKind]chan struct{}
	speedHold chan struct{}
}

func (f *fakeCollector) Hardware(context.Context) collector.HardwareReport {
	return collector.HardwareReport{
		CPUName:         probe.Ok("Apple M2"),
		CPUCores:        probe.Ok(4),
		RAMGiB:          probe.Ok(16),
		OSName:          probe.Ok("macOS 14.4"),
		Username:        probe.Ok("alice"),
		Hostname:        probe.Failed(probe.UnknownText, errors.New("hostname: not set")),
		PlatformArch:    "64bit",
		DiskCapacityGiB: probe.Ok(460.43),
		DiskFreeGiB:     probe.Ok(120.5),
		DiskUsedGiB:     probe.Ok(339.93),
	}
}

func (f *fakeCollector) Address(_ context.Context, kind collector.AddressKind) collector.AddressInfo {
	if ch, ok := f.hold[kind]; ok {
		<-ch
	}
	if kind == collector.PublicIPv4 {
		return collector.AddressInfo{
			Kind:    kind,
			Address: probe.Failed(probe.NotDetectable, errors.New("x509: certificate has expired")),
		}
	}
	return collector.AddressInfo{Kind: kind, Address: probe.Ok("192.168.1.20"), SubnetMask: "255.255.255.0"}
}

func (f *fakeCollector) SpeedTest(context.Context) probe.Result[collector.SpeedTestResult] {
	if f.speedHold != nil {
		<-f.speedHold
	}
	return probe.Ok(collector.SpeedTestResult{DownloadMbps: 94.21, UploadMbps: 11.51})
}

func startDashboard(t *testing.T, c Collector) *Dashboard {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	d := New(c, "1.0.0", nil)
	d.app.SetScreen(screen)

	done := make(chan error, 1)
	go func() { done <- d.app.Run() }()
	t.Cleanup(func() {
		d.Stop()
		<-done
	})
	return d
}

// onUI runs fn on the UI goroutine and returns its result
func onUI[T any](d *Dashboard, fn func() T) T {
	ch := make(chan T, 1)
	d.app.QueueUpdate(func() { ch <- fn() })
	return <-ch
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (d *Dashboard) frontPage() string {
	name, _ := d.pages.GetFrontPage()
	return name
}

func TestPrivateAddressPopup(t *testing.T) {
	release := make(chan struct{})
	d := startDashboard(t, &fakeCollector{hold: map[collector.AddressKind]chan struct{}{collector.PrivateIPv4: release}})

	onUI(d, func() bool { d.showAddress(collector.PrivateIPv4); return true })

	eventually(t, "busy popup", func() bool {
		return onUI(d, func() bool { return len(d.busy) == 1 && strings.HasPrefix(d.frontPage(), "busy-") })
	})

	close(release)
	d.runner.Wait()

	eventually(t, "result popup", func() bool {
		return onUI(d, func() bool { return d.frontPage() == "popup-1" && len(d.busy) == 0 })
	})
}

func TestButtonPressKeepsLoopRunning(t *testing.T) {
	release := make(chan struct{})
	d := startDashboard(t, &fakeCollector{speedHold: release})

	// the speedtest button has focus at startup
	d.app.QueueEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	serviced := make(chan bool, 1)
	go func() {
		serviced <- onUI(d, func() bool { return true })
	}()
	select {
	case <-serviced:
	case <-time.After(3 * time.Second):
		t.Fatalf("event loop stopped servicing updates after a button press (in flight: %d)", d.runner.InFlight())
	}

	eventually(t, "speedtest busy popup", func() bool {
		return onUI(d, func() bool { return len(d.busy) == 1 && d.runner.InFlight() == 1 })
	})

	close(release)
	d.runner.Wait()

	eventually(t, "speedtest result", func() bool {
		return onUI(d, func() bool { return d.frontPage() == "popup-1" && len(d.busy) == 0 })
	})
}

func TestDismissBusyKeepsOtherTasks(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	d := startDashboard(t, &fakeCollector{hold: map[collector.AddressKind]chan struct{}{
		collector.PrivateIPv4: first,
		collector.PrivateIPv6: second,
	}})

	onUI(d, func() bool {
		d.showAddress(collector.PrivateIPv4)
		d.showAddress(collector.PrivateIPv6)
		return true
	})
	pending := onUI(d, func() []string {
		var pages []string
		for _, b := range d.busy {
			pages = append(pages, b.page)
		}
		return pages
	})
	if len(pending) != 2 {
		t.Fatalf("busy popups = %v, want 2", pending)
	}

	// the older task finishes first; the newer one keeps its indicator
	close(first)
	eventually(t, "first result", func() bool {
		return onUI(d, func() bool { return d.popups == 1 })
	})
	remaining := onUI(d, func() []string {
		var pages []string
		for _, b := range d.busy {
			pages = append(pages, b.page)
		}
		return pages
	})
	if len(remaining) != 1 || remaining[0] != pending[1] {
		t.Errorf("busy popups after first finished = %v, want [%s]", remaining, pending[1])
	}
	if onUI(d, func() bool { return d.pages.HasPage(pending[0]) }) {
		t.Errorf("page %s still present after its task finished", pending[0])
	}

	close(second)
	d.runner.Wait()
	eventually(t, "all busy popups dismissed", func() bool {
		return onUI(d, func() bool { return len(d.busy) == 0 && d.popups == 2 })
	})
}

func TestPublicAddressFailureShowsError(t *testing.T) {
	d := startDashboard(t, &fakeCollector{})

	onUI(d, func() bool { d.showAddress(collector.PublicIPv4); return true })
	d.runner.Wait()

	eventually(t, "error popup", func() bool {
		return onUI(d, func() bool { return d.frontPage() == "popup-1" })
	})

	// Escape dismisses the popup
	d.app.QueueEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	eventually(t, "popup dismissed", func() bool {
		return onUI(d, func() bool { return d.frontPage() == mainPage })
	})
}

func TestHardwarePanels(t *testing.T) {
	d := startDashboard(t, &fakeCollector{})

	onUI(d, func() bool { d.showHardware(); return true })
	d.runner.Wait()

	eventually(t, "hardware panels", func() bool {
		return onUI(d, func() bool { return d.disk.GetText(false) != "" })
	})

	hardware := onUI(d, func() string { return d.hardware.GetText(false) })
	disk := onUI(d, func() string { return d.disk.GetText(false) })

	for _, want := range []string{"Apple M2", "16GB", "unknown", "64bit"} {
		if !strings.Contains(hardware, want) {
			t.Errorf("hardware panel missing %q:\n%s", want, hardware)
		}
	}
	for _, want := range []string{"460GB", "120.50GB", "339.93GB"} {
		if !strings.Contains(disk, want) {
			t.Errorf("disk panel missing %q:\n%s", want, disk)
		}
	}
}

func TestStatusText(t *testing.T) {
	d := New(&fakeCollector{}, "1.0.0", nil)
	want := "press Q to exit | escape to dismiss popups | version : 1.0.0"
	if got := d.statusText(); got != want {
		t.Errorf("statusText() = %q, want %q", got, want)
	}
}
