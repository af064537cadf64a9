package collector

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stone-age-io/termfetch/internal/probe"
	"github.com/stone-age-io/termfetch/internal/utils"
	"go.uber.org/zap"
)

// scrapeTTL is how long one scrape answers all hardware facts
const scrapeTTL = 5 * time.Second

// ExporterSource reads facts from a local Prometheus exporter. Exporters do not
// publish interface addresses, so those are delegated to another source.
type ExporterSource struct {
	exporterURL string
	httpClient  *http.Client
	names       ExporterNames
	addresses   Source
	logger      *zap.Logger
	now         func() time.Time

	mu        sync.Mutex
	scrapedAt time.Time
	families  map[string]*dto.MetricFamily
	scrapeErr error
}

// NewExporterSource creates a source scraping exporterURL
func NewExporterSource(exporterURL string, httpClient *http.Client, addresses Source, logger *zap.Logger) *ExporterSource {
	return &ExporterSource{
		exporterURL: exporterURL,
		httpClient:  httpClient,
		names:       GetExporterNames(),
		addresses:   addresses,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ExporterSource) Name() string {
	return fmt.Sprintf("exporter (%s)", s.exporterURL)
}

func (s *ExporterSource) CPUName(ctx context.Context) probe.Result[string] {
	return s.labelFact(ctx, probe.FactCPUName, s.names.CPUInfo, s.names.CPUNameLabel)
}

func (s *ExporterSource) OSName(ctx context.Context) probe.Result[string] {
	return s.labelFact(ctx, probe.FactOSName, s.names.OSInfo, s.names.OSNameLabel)
}

func (s *ExporterSource) RAMGiB(ctx context.Context) probe.Result[int] {
	families, err := s.scrape(ctx)
	if err != nil {
		return unavailable(0, probe.FactRAM, err)
	}
	family, ok := families[s.names.MemoryTotal]
	if !ok || len(family.Metric) == 0 {
		return unavailable(0, probe.FactRAM, missingMetric(s.names.MemoryTotal))
	}
	return probe.Ok(int(math.Round(utils.BytesToGiB(gaugeValue(family.Metric[0])))))
}

func (s *ExporterSource) DiskCapacityGiB(ctx context.Context) probe.Result[float64] {
	return s.volumeFact(ctx, probe.FactDiskCapacity, s.names.DiskSize)
}

func (s *ExporterSource) DiskFreeGiB(ctx context.Context) probe.Result[float64] {
	return s.volumeFact(ctx, probe.FactDiskFree, s.names.DiskFree)
}

func (s *ExporterSource) PrivateAddress(ctx context.Context, v6 bool) probe.Result[string] {
	return s.addresses.PrivateAddress(ctx, v6)
}

func (s *ExporterSource) volumeFact(ctx context.Context, fact probe.Fact, metric string) probe.Result[float64] {
	families, err := s.scrape(ctx)
	if err != nil {
		return unavailable(0.0, fact, err)
	}
	family, ok := families[metric]
	if !ok {
		return unavailable(0.0, fact, missingMetric(metric))
	}
	for _, m := range family.Metric {
		if getLabelValue(m.Label, s.names.VolumeLabel) == s.names.RootVolume {
			return probe.Ok(utils.BytesToGiB(gaugeValue(m)))
		}
	}
	return unavailable(0.0, fact, fmt.Errorf("no %s series for %s %q", metric, s.names.VolumeLabel, s.names.RootVolume))
}

// labelFact reads a string fact carried as a label on an info metric
func (s *ExporterSource) labelFact(ctx context.Context, fact probe.Fact, metric, label string) probe.Result[string] {
	families, err := s.scrape(ctx)
	if err != nil {
		return unavailable(probe.UnknownText, fact, err)
	}
	family, ok := families[metric]
	if !ok {
		return unavailable(probe.UnknownText, fact, missingMetric(metric))
	}
	for _, m := range family.Metric {
		if v := getLabelValue(m.Label, label); v != "" {
			return probe.Ok(v)
		}
	}
	return unavailable(probe.UnknownText, fact, fmt.Errorf("%s has no %q label", metric, label))
}

// scrape returns the metric families of the last scrape, fetching again once it
// is older than scrapeTTL. A failed scrape is remembered for the same period.
func (s *ExporterSource) scrape(ctx context.Context) (map[string]*dto.MetricFamily, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scrapedAt.IsZero() && s.now().Sub(s.scrapedAt) < scrapeTTL {
		return s.families, s.scrapeErr
	}

	s.families, s.scrapeErr = s.fetch(ctx)
	s.scrapedAt = s.now()
	return s.families, s.scrapeErr
}

func (s *ExporterSource) fetch(ctx context.Context) (map[string]*dto.MetricFamily, error) {
	s.logger.Debug("Scraping exporter",
		zap.String("url", s.exporterURL),
		zap.String("exporter", GetExporterName()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.exporterURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("exporter scrape timeout: %w", err)
		}
		return nil, fmt.Errorf("failed to fetch metrics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// 10MB limit
	families, err := parseMetricFamilies(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to parse metrics: %w", err)
	}

	s.logger.Debug("Exporter scrape completed", zap.Int("families", len(families)))
	return families, nil
}

func parseMetricFamilies(reader io.Reader) (map[string]*dto.MetricFamily, error) {
	decoder := expfmt.NewDecoder(reader, expfmt.FmtText)

	families := make(map[string]*dto.MetricFamily)
	for {
		mf := &dto.MetricFamily{}
		err := decoder.Decode(mf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode metric family: %w", err)
		}
		families[mf.GetName()] = mf
	}
	return families, nil
}

func gaugeValue(m *dto.Metric) float64 {
	if m.Gauge != nil {
		return m.Gauge.GetValue()
	}
	if m.Untyped != nil {
		return m.Untyped.GetValue()
	}
	return 0
}

func getLabelValue(labels []*dto.LabelPair, name string) string {
	for _, label := range labels {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}

func missingMetric(name string) error {
	return fmt.Errorf("exporter does not publish %s", name)
}
