package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/showwin/speedtest-go/speedtest"
	"go.uber.org/zap"
)

// SpeedMeter starts speed test runs. Prepare selects a server and returns a run
// that owns all of its measurement state.
type SpeedMeter interface {
	Prepare(ctx context.Context) (SpeedRun, error)
}

// SpeedRun measures one server. Download and Upload return bits per second.
type SpeedRun interface {
	Download(ctx context.Context) (float64, error)
	Upload(ctx context.Context) (float64, error)
}

// speedtest.New points http.DefaultClient at the client it is building, so
// concurrent constructions must not overlap.
var newSpeedtestMu sync.Mutex

// OoklaMeter measures against speedtest.net servers. Every run gets its own
// client, HTTP transport and rate counters.
type OoklaMeter struct {
	serverID int
	logger   *zap.Logger

	// options builds the client options for one run
	options func() []speedtest.Option
	// captureTime overrides the library's measurement window when set
	captureTime time.Duration
}

// NewOoklaMeter creates a meter. A zero serverID selects the lowest-latency server.
func NewOoklaMeter(serverID int, logger *zap.Logger) *OoklaMeter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OoklaMeter{
		serverID: serverID,
		logger:   logger,
		options: func() []speedtest.Option {
			return []speedtest.Option{
				speedtest.WithDoer(&http.Client{}),
				speedtest.WithUserConfig(&speedtest.UserConfig{UserAgent: speedtest.DefaultUserAgent}),
			}
		},
	}
}

func (m *OoklaMeter) newClient() *speedtest.Speedtest {
	newSpeedtestMu.Lock()
	defer newSpeedtestMu.Unlock()

	client := speedtest.New(m.options()...)
	if m.captureTime > 0 {
		client.SetCaptureTime(m.captureTime)
	}
	return client
}

// Prepare fetches the server list with a fresh client and picks the target server
func (m *OoklaMeter) Prepare(ctx context.Context) (SpeedRun, error) {
	client := m.newClient()

	servers, err := client.FetchServerListContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server list: %w", err)
	}

	var ids []int
	if m.serverID != 0 {
		ids = []int{m.serverID}
	}
	targets, err := servers.FindServer(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to select server: %w", err)
	}
	if len(targets) == 0 {
		return nil, errors.New("no speed test server available")
	}

	server := targets[0]
	m.logger.Info("Selected speed test server",
		zap.String("server", server.Name),
		zap.String("sponsor", server.Sponsor),
		zap.Float64("distance_km", server.Distance))
	return &ooklaRun{server: server}, nil
}

// ooklaRun is single use. Its server's Context is the client created for it.
type ooklaRun struct {
	server *speedtest.Server
}

// Download measures download throughput
func (r *ooklaRun) Download(ctx context.Context) (float64, error) {
	if err := r.server.DownloadTestContext(ctx); err != nil {
		return 0, fmt.Errorf("download test failed: %w", err)
	}
	return measured("download", r.server.DLSpeed)
}

// Upload measures upload throughput
func (r *ooklaRun) Upload(ctx context.Context) (float64, error) {
	if err := r.server.UploadTestContext(ctx); err != nil {
		return 0, fmt.Errorf("upload test failed: %w", err)
	}
	return measured("upload", r.server.ULSpeed)
}

// measured converts a byte rate to bits per second. The library reports a failed
// direction as -1 (or a rate that is not a number) instead of an error.
func measured(direction string, rate speedtest.ByteRate) (float64, error) {
	if !(rate > 0) {
		return 0, fmt.Errorf("%s test failed: no usable samples", direction)
	}
	return float64(rate) * 8, nil
}
