package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stone-age-io/termfetch/internal/probe"
	"github.com/stone-age-io/termfetch/internal/utils"
	"go.uber.org/zap"
)

// Fetcher retrieves a short text body from a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) probe.Result[string]
}

// Endpoints are the URLs answering with the caller's public address
type Endpoints struct {
	IPv4 string
	IPv6 string
}

// Collector gathers every fact the dashboard and CLI display. Its methods block
// until all probes they need have returned and never fail outright: a fact that
// could not be obtained carries its sentinel.
type Collector struct {
	source    Source
	fetcher   Fetcher
	meter     SpeedMeter
	env       Environment
	envKeys   probe.EnvKeys
	endpoints Endpoints
	fallback  fallbacks
	logger    *zap.Logger
}

// New creates a collector
func New(source Source, fetcher Fetcher, meter SpeedMeter, env Environment, envKeys probe.EnvKeys, endpoints Endpoints, logger *zap.Logger) *Collector {
	if env == nil {
		env = OSEnvironment{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		source:    source,
		fetcher:   fetcher,
		meter:     meter,
		env:       env,
		envKeys:   envKeys,
		endpoints: endpoints,
		fallback:  systemFallbacks(),
		logger:    logger,
	}
}

// Hardware probes every hardware fact in turn
func (c *Collector) Hardware(ctx context.Context) HardwareReport {
	start := time.Now()

	report := HardwareReport{
		CPUName:      c.source.CPUName(ctx),
		CPUCores:     c.cpuCores(),
		RAMGiB:       c.source.RAMGiB(ctx),
		OSName:       c.source.OSName(ctx),
		Username:     c.identity(probe.FactUsername, c.envKeys.Username, c.fallback.username),
		Hostname:     c.identity(probe.FactHostname, c.envKeys.Hostname, c.fallback.hostname),
		PlatformArch: platformArch(),
	}
	report.DiskCapacityGiB = c.source.DiskCapacityGiB(ctx)
	report.DiskFreeGiB = c.source.DiskFreeGiB(ctx)
	report.DiskUsedGiB = DiskUsed(report.DiskCapacityGiB, report.DiskFreeGiB)

	failed := 0
	for _, f := range []struct {
		fact probe.Fact
		ok   bool
		kind probe.Kind
		why  string
	}{
		{probe.FactCPUName, report.CPUName.OK(), report.CPUName.Kind(), report.CPUName.Reason()},
		{probe.FactCPUCores, report.CPUCores.OK(), report.CPUCores.Kind(), report.CPUCores.Reason()},
		{probe.FactRAM, report.RAMGiB.OK(), report.RAMGiB.Kind(), report.RAMGiB.Reason()},
		{probe.FactOSName, report.OSName.OK(), report.OSName.Kind(), report.OSName.Reason()},
		{probe.FactUsername, report.Username.OK(), report.Username.Kind(), report.Username.Reason()},
		{probe.FactHostname, report.Hostname.OK(), report.Hostname.Kind(), report.Hostname.Reason()},
		{probe.FactDiskCapacity, report.DiskCapacityGiB.OK(), report.DiskCapacityGiB.Kind(), report.DiskCapacityGiB.Reason()},
		{probe.FactDiskFree, report.DiskFreeGiB.OK(), report.DiskFreeGiB.Kind(), report.DiskFreeGiB.Reason()},
	} {
		if f.ok {
			continue
		}
		failed++
		c.logger.Warn("Hardware fact unavailable",
			zap.String("fact", string(f.fact)),
			zap.String("kind", string(f.kind)),
			zap.String("error", f.why))
	}

	c.logger.Info("Hardware report collected",
		zap.String("source", c.source.Name()),
		zap.Int("failed_facts", failed),
		zap.Duration("duration", time.Since(start)))

	return report
}

// cpuCores approximates physical cores as half the logical processor count. The
// approximation ignores whether hyperthreading is actually enabled.
func (c *Collector) cpuCores() probe.Result[int] {
	raw, ok := c.lookup(c.envKeys.LogicalProcessors)
	if !ok {
		return probe.Ok(utils.Halve(c.fallback.numCPU()))
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return probe.Failed(0, probe.NewError(probe.KindParse, probe.FactCPUCores,
			fmt.Errorf("%s is not a processor count: %q", c.envKeys.LogicalProcessors, raw)))
	}
	return probe.Ok(utils.Halve(n))
}

// identity reads a name from the environment, falling back to the OS
func (c *Collector) identity(fact probe.Fact, key string, fallback func() (string, error)) probe.Result[string] {
	if v, ok := c.lookup(key); ok {
		return probe.Ok(v)
	}
	v, err := fallback()
	if err != nil {
		return probe.Failed(probe.UnknownText, probe.NewError(probe.KindUnavailable, fact, err))
	}
	if v = strings.TrimSpace(v); v == "" {
		return probe.Failed(probe.UnknownText, probe.NewError(probe.KindUnavailable, fact,
			errors.New("not set in the environment and not reported by the system")))
	}
	return probe.Ok(v)
}

// lookup returns a non-blank environment value
func (c *Collector) lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := c.env.Lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// DiskUsed derives used space from capacity and free space. It fails, with
// DiskUsedSentinel, whenever either input failed.
func DiskUsed(capacity, free probe.Result[float64]) probe.Result[float64] {
	switch {
	case !capacity.OK() && !free.OK():
		return probe.Failed(DiskUsedSentinel, probe.NewError(capacity.Kind(), probe.FactDiskUsed,
			errors.New("disk capacity and free space are both unavailable")))
	case !capacity.OK():
		return probe.Failed(DiskUsedSentinel, probe.NewError(capacity.Kind(), probe.FactDiskUsed,
			fmt.Errorf("disk capacity unavailable: %s", capacity.Reason())))
	case !free.OK():
		return probe.Failed(DiskUsedSentinel, probe.NewError(free.Kind(), probe.FactDiskUsed,
			fmt.Errorf("free space unavailable: %s", free.Reason())))
	}
	return probe.Ok(capacity.Value() - free.Value())
}

// Address resolves one address. Private IPv4 addresses also get their classful
// subnet mask.
func (c *Collector) Address(ctx context.Context, kind AddressKind) AddressInfo {
	info := AddressInfo{Kind: kind}

	switch kind {
	case PrivateIPv4:
		info.Address = c.source.PrivateAddress(ctx, false)
		if info.Address.OK() {
			mask, ok, err := probe.Classify(info.Address.Value())
			if err != nil {
				c.logger.Warn("Cannot classify private address",
					zap.String("address", info.Address.Value()),
					zap.Error(err))
			} else if ok {
				info.SubnetMask = mask
			}
		}
	case PrivateIPv6:
		info.Address = c.source.PrivateAddress(ctx, true)
	case PublicIPv4:
		info.Address = c.fetchPublic(ctx, probe.FactPublicIPv4, c.endpoints.IPv4)
	case PublicIPv6:
		info.Address = c.fetchPublic(ctx, probe.FactPublicIPv6, c.endpoints.IPv6)
	default:
		info.Address = probe.Failed(probe.NotDetectable, probe.NewError(probe.KindMalformedInput, "",
			fmt.Errorf("invalid address kind: %q", kind)))
	}

	if !info.Address.OK() {
		c.logger.Warn("Address unavailable",
			zap.String("kind", string(kind)),
			zap.String("error", info.Address.Reason()))
	}
	return info
}

func (c *Collector) fetchPublic(ctx context.Context, fact probe.Fact, url string) probe.Result[string] {
	if url == "" {
		return probe.Failed(probe.NotDetectable, probe.NewError(probe.KindNetwork, fact,
			errors.New("no endpoint configured")))
	}
	return c.fetcher.Fetch(ctx, url)
}

// SpeedTest selects a server, then measures download and upload one after the other
func (c *Collector) SpeedTest(ctx context.Context) probe.Result[SpeedTestResult] {
	var zero SpeedTestResult
	start := time.Now()

	run, err := c.meter.Prepare(ctx)
	if err != nil {
		return probe.Failed(zero, probe.NewError(probe.KindNetwork, probe.FactSpeedTest, err))
	}

	down, err := run.Download(ctx)
	if err != nil {
		return probe.Failed(zero, probe.NewError(probe.KindNetwork, probe.FactSpeedTest, err))
	}

	up, err := run.Upload(ctx)
	if err != nil {
		return probe.Failed(zero, probe.NewError(probe.KindNetwork, probe.FactSpeedTest, err))
	}

	result := SpeedTestResult{
		DownloadMbps: utils.BitsToMbps(down),
		UploadMbps:   utils.BitsToMbps(up),
	}

	c.logger.Info("Speed test completed",
		zap.Float64("download_mbps", result.DownloadMbps),
		zap.Float64("upload_mbps", result.UploadMbps),
		zap.Duration("duration", time.Since(start)))

	return probe.Ok(result)
}

func platformArch() string {
	return strconv.Itoa(strconv.IntSize) + "bit"
}
