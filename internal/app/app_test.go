package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/config"
	"github.com/stone-age-io/termfetch/internal/output"
	"github.com/stone-age-io/termfetch/internal/probe"
	"go.uber.org/zap"
)

type fakeCollector struct {
	speedErr error
}

func (f *fakeCollector) Hardware(context.Context) collector.HardwareReport {
	return collector.HardwareReport{
		CPUName:         probe.Ok("AMD EPYC 7B13"),
		CPUCores:        probe.Ok(8),
		RAMGiB:          probe.Ok(32),
		OSName:          probe.Ok("Debian GNU/Linux 12 (bookworm)"),
		Username:        probe.Ok("root"),
		Hostname:        probe.Ok("build-01"),
		PlatformArch:    "64bit",
		DiskCapacityGiB: probe.Ok(100.0),
		DiskFreeGiB:     probe.Ok(40.0),
		DiskUsedGiB:     probe.Ok(60.0),
	}
}

func (f *fakeCollector) Address(_ context.Context, kind collector.AddressKind) collector.AddressInfo {
	if kind.Public() {
		return collector.AddressInfo{Kind: kind, Address: probe.Failed(probe.NotDetectable, errors.New("dial tcp: no route to host"))}
	}
	return collector.AddressInfo{Kind: kind, Address: probe.Ok("10.0.0.8"), SubnetMask: "255.0.0.0"}
}

func (f *fakeCollector) SpeedTest(context.Context) probe.Result[collector.SpeedTestResult] {
	if f.speedErr != nil {
		return probe.Failed(collector.SpeedTestResult{}, f.speedErr)
	}
	return probe.Ok(collector.SpeedTestResult{DownloadMbps: 250.5, UploadMbps: 20})
}

func testApp(c *fakeCollector) *App {
	return &App{logger: zap.NewNop(), collector: c, version: "test"}
}

func TestHardwareCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := testApp(&fakeCollector{}).Hardware(context.Background(), &out, &errOut, output.FormatText); err != nil {
		t.Fatalf("Hardware() error = %v", err)
	}
	for _, want := range []string{"AMD EPYC 7B13", "32GB", "100GB", "60.00GB"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errOut.String(), "loading hardware info") {
		t.Errorf("busy message missing from stderr: %q", errOut.String())
	}
}

func TestAddressCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	a := testApp(&fakeCollector{})

	if err := a.Address(context.Background(), collector.PrivateIPv4, &out, &errOut, output.FormatText); err != nil {
		t.Fatalf("Address() error = %v", err)
	}
	if !strings.Contains(out.String(), "10.0.0.8/255.0.0.0") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	errOut.Reset()
	err := a.Address(context.Background(), collector.PublicIPv4, &out, &errOut, output.FormatText)
	if !errors.Is(err, ErrProbeFailed) {
		t.Fatalf("Address() error = %v, want ErrProbeFailed", err)
	}
	if !strings.Contains(errOut.String(), "no route to host") {
		t.Errorf("stderr = %q, want failure reason", errOut.String())
	}
}

func TestSpeedTestCommandJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	a := testApp(&fakeCollector{speedErr: errors.New("speedtest: failed to fetch server list")})

	err := a.SpeedTest(context.Background(), &out, &errOut, output.FormatJSON)
	if !errors.Is(err, ErrProbeFailed) {
		t.Fatalf("SpeedTest() error = %v, want ErrProbeFailed", err)
	}
	if !strings.Contains(out.String(), `"sentinel"`) {
		t.Errorf("json output should carry the sentinel: %s", out.String())
	}
}

func TestInitLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termfetch.log")
	logger, err := initLogger(config.LoggingConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1}, false)
	if err != nil {
		t.Fatalf("initLogger() error = %v", err)
	}
	logger.Info("hello", zap.String("fact", "cpu_name"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"fact":"cpu_name"`) {
		t.Errorf("log file = %s", data)
	}

	if _, err := initLogger(config.LoggingConfig{Level: "loud", File: path}, false); err == nil {
		t.Error("initLogger() with invalid level should fail")
	}
}
