package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stone-age-io/termfetch/internal/probe"
	"go.uber.org/zap"
)

// Source answers the hardware and private address facts. Every method returns
// a Result; failures carry the fact's sentinel.
type Source interface {
	// Name returns the source name for logging
	Name() string

	CPUName(ctx context.Context) probe.Result[string]
	RAMGiB(ctx context.Context) probe.Result[int]
	OSName(ctx context.Context) probe.Result[string]
	DiskCapacityGiB(ctx context.Context) probe.Result[float64]
	DiskFreeGiB(ctx context.Context) probe.Result[float64]
	PrivateAddress(ctx context.Context, v6 bool) probe.Result[string]
}

// Source names accepted by NewSource
const (
	SourceExec     = "exec"
	SourceNative   = "native"
	SourceExporter = "exporter"
)

// SourceConfig carries what the sources need to be built
type SourceConfig struct {
	Kind           string
	CommandTimeout time.Duration
	ExporterURL    string
	Table          probe.Table
	Runner         probe.Runner
	HTTPClient     *http.Client
}

// NewSource creates the source selected by cfg.Kind
func NewSource(cfg SourceConfig, logger *zap.Logger) (Source, error) {
	kind := strings.ToLower(cfg.Kind)
	if kind == "" {
		kind = SourceExec
	}

	exec := NewExecSource(probe.NewProcessProbe(cfg.Runner, cfg.CommandTimeout, logger), cfg.Table)

	switch kind {
	case SourceExec:
		logger.Info("Using exec hardware source", zap.String("platform", cfg.Table.Platform))
		return exec, nil
	case SourceNative:
		logger.Info("Using native hardware source (gopsutil)")
		return NewNativeSource(logger), nil
	case SourceExporter:
		if cfg.ExporterURL == "" {
			return nil, fmt.Errorf("exporter_url required for exporter source")
		}
		client := cfg.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: 5 * time.Second}
		}
		logger.Info("Using exporter hardware source", zap.String("url", cfg.ExporterURL))
		return NewExporterSource(cfg.ExporterURL, client, exec, logger), nil
	default:
		return nil, fmt.Errorf("unknown hardware source: %s", cfg.Kind)
	}
}
