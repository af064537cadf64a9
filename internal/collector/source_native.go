package collector

import (
	"context"
	"errors"
	"math"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/stone-age-io/termfetch/internal/probe"
	"github.com/stone-age-io/termfetch/internal/utils"
	"go.uber.org/zap"
)

// NativeSource reads facts through gopsutil instead of spawning utilities
type NativeSource struct {
	logger   *zap.Logger
	rootPath string
}

// NewNativeSource creates a gopsutil-based source
func NewNativeSource(logger *zap.Logger) *NativeSource {
	root := "/"
	if runtime.GOOS == "windows" {
		root = `C:\`
	}
	return &NativeSource{logger: logger, rootPath: root}
}

func (s *NativeSource) Name() string {
	return "native (gopsutil)"
}

func (s *NativeSource) CPUName(ctx context.Context) probe.Result[string] {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return unavailable(probe.UnknownText, probe.FactCPUName, err)
	}
	for _, info := range infos {
		if name := strings.TrimSpace(info.ModelName); name != "" {
			return probe.Ok(name)
		}
	}
	return unavailable(probe.UnknownText, probe.FactCPUName, errors.New("no CPU model reported"))
}

func (s *NativeSource) RAMGiB(ctx context.Context) probe.Result[int] {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return unavailable(0, probe.FactRAM, err)
	}
	return probe.Ok(int(math.Round(utils.BytesToGiB(float64(vm.Total)))))
}

func (s *NativeSource) OSName(ctx context.Context) probe.Result[string] {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return unavailable(probe.UnknownText, probe.FactOSName, err)
	}
	name := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	if name == "" {
		return unavailable(probe.UnknownText, probe.FactOSName, errors.New("no platform reported"))
	}
	return probe.Ok(name)
}

func (s *NativeSource) DiskCapacityGiB(ctx context.Context) probe.Result[float64] {
	usage, err := disk.UsageWithContext(ctx, s.rootPath)
	if err != nil {
		return unavailable(0.0, probe.FactDiskCapacity, err)
	}
	return probe.Ok(utils.BytesToGiB(float64(usage.Total)))
}

func (s *NativeSource) DiskFreeGiB(ctx context.Context) probe.Result[float64] {
	usage, err := disk.UsageWithContext(ctx, s.rootPath)
	if err != nil {
		return unavailable(0.0, probe.FactDiskFree, err)
	}
	return probe.Ok(utils.BytesToGiB(float64(usage.Free)))
}

func (s *NativeSource) PrivateAddress(ctx context.Context, v6 bool) probe.Result[string] {
	fact := probe.FactPrivateIPv4
	if v6 {
		fact = probe.FactPrivateIPv6
	}

	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return unavailable(probe.NotDetectable, fact, err)
	}

	var addrs []string
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		for _, a := range iface.Addrs {
			addrs = append(addrs, a.Addr)
		}
	}

	addr, err := probe.Address(v6)(strings.Join(addrs, " "))
	if err != nil {
		s.logger.Debug("No usable interface address",
			zap.String("fact", string(fact)),
			zap.Int("interfaces", len(ifaces)))
		return unavailable(probe.NotDetectable, fact, err)
	}
	return probe.Ok(addr)
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

func unavailable[T any](sentinel T, fact probe.Fact, err error) probe.Result[T] {
	return probe.Failed(sentinel, probe.NewError(probe.KindUnavailable, fact, err))
}
