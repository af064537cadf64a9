package collector

import (
	"context"

	"github.com/stone-age-io/termfetch/internal/probe"
)

// ExecSource answers every fact by running the platform utility listed in its table
type ExecSource struct {
	probe *probe.ProcessProbe
	table probe.Table
}

// NewExecSource creates a source backed by a fact table
func NewExecSource(p *probe.ProcessProbe, table probe.Table) *ExecSource {
	return &ExecSource{probe: p, table: table}
}

func (s *ExecSource) Name() string {
	return "exec (" + s.table.Platform + ")"
}

func (s *ExecSource) CPUName(ctx context.Context) probe.Result[string] {
	return probe.Exec(ctx, s.probe, probe.FactCPUName, s.table.CPUName, probe.UnknownText)
}

func (s *ExecSource) RAMGiB(ctx context.Context) probe.Result[int] {
	return probe.Exec(ctx, s.probe, probe.FactRAM, s.table.RAMGiB, 0)
}

func (s *ExecSource) OSName(ctx context.Context) probe.Result[string] {
	return probe.Exec(ctx, s.probe, probe.FactOSName, s.table.OSName, probe.UnknownText)
}

func (s *ExecSource) DiskCapacityGiB(ctx context.Context) probe.Result[float64] {
	return probe.Exec(ctx, s.probe, probe.FactDiskCapacity, s.table.DiskCapacity, 0)
}

func (s *ExecSource) DiskFreeGiB(ctx context.Context) probe.Result[float64] {
	return probe.Exec(ctx, s.probe, probe.FactDiskFree, s.table.DiskFree, 0)
}

func (s *ExecSource) PrivateAddress(ctx context.Context, v6 bool) probe.Result[string] {
	if v6 {
		return probe.Exec(ctx, s.probe, probe.FactPrivateIPv6, s.table.PrivateIPv6, probe.NotDetectable)
	}
	return probe.Exec(ctx, s.probe, probe.FactPrivateIPv4, s.table.PrivateIPv4, probe.NotDetectable)
}
