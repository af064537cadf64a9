package collector

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/showwin/speedtest-go/speedtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const serverListHost = "www.speedtest.net"

const serverList = `[
  {"url":"http://st1.example.net:8080/speedtest/upload.php","lat":"52.37","lon":"4.89","name":"Amsterdam","country":"Netherlands","sponsor":"Example One","id":"42","host":"st1.example.net:8080"},
  {"url":"http://st2.example.net:8080/speedtest/upload.php","lat":"50.11","lon":"8.68","name":"Frankfurt","country":"Germany","sponsor":"Example Two","id":"43","host":"st2.example.net:8080"}
]`

// speedtestTransport answers speedtest.net and test server requests in memory.
// With refuse set, every request to a test server fails.
type speedtestTransport struct {
	refuse bool

	mu    sync.Mutex
	hosts map[string]int
}

func (t *speedtestTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host != serverListHost && t.refuse {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, errors.New("connect: connection refused")
	}
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}

	t.mu.Lock()
	if t.hosts == nil {
		t.hosts = map[string]int{}
	}
	t.hosts[req.URL.Host]++
	t.mu.Unlock()

	var body []byte
	switch {
	case req.URL.Host == serverListHost:
		body = []byte(serverList)
	case strings.HasSuffix(req.URL.Path, ".jpg"):
		body = bytes.Repeat([]byte{0xAA}, 256<<10)
	default:
		body = []byte("test=test")
	}
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{},
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

func newTestMeter(serverID int, transport http.RoundTripper) *OoklaMeter {
	m := NewOoklaMeter(serverID, zap.NewNop())
	m.options = func() []speedtest.Option {
		return []speedtest.Option{speedtest.WithDoer(&http.Client{Transport: transport})}
	}
	m.captureTime = 200 * time.Millisecond
	return m
}

func TestOoklaMeterMeasures(t *testing.T) {
	transport := &speedtestTransport{}
	m := newTestMeter(43, transport)

	run, err := m.Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "43", run.(*ooklaRun).server.ID)

	down, err := run.Download(context.Background())
	require.NoError(t, err)
	assert.Greater(t, down, 0.0)

	up, err := run.Upload(context.Background())
	require.NoError(t, err)
	assert.Greater(t, up, 0.0)

	transport.mu.Lock()
	defer transport.mu.Unlock()
	assert.Positive(t, transport.hosts["st2.example.net:8080"])
}

func TestOoklaMeterFailedDirections(t *testing.T) {
	m := newTestMeter(42, &speedtestTransport{refuse: true})

	run, err := m.Prepare(context.Background())
	require.NoError(t, err)

	_, err = run.Download(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download test failed: no usable samples")

	_, err = run.Upload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload test failed: no usable samples")
}

func TestOoklaMeterConcurrentRuns(t *testing.T) {
	m := newTestMeter(42, &speedtestTransport{})

	const runs = 2
	var wg sync.WaitGroup
	servers := make([]*speedtest.Server, runs)
	downs := make([]float64, runs)
	errs := make([]error, runs)

	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			run, err := m.Prepare(context.Background())
			if err != nil {
				errs[i] = err
				return
			}
			servers[i] = run.(*ooklaRun).server
			downs[i], errs[i] = run.Download(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < runs; i++ {
		require.NoError(t, errs[i], "run %d", i)
		assert.Greater(t, downs[i], 0.0, "run %d", i)
	}
	assert.NotSame(t, servers[0], servers[1])
	assert.NotSame(t, servers[0].Context, servers[1].Context)
}

func TestMeasured(t *testing.T) {
	tests := []struct {
		name    string
		rate    speedtest.ByteRate
		want    float64
		wantErr bool
	}{
		{name: "rate", rate: 1.25e6, want: 1e7},
		{name: "not available", rate: -1, wantErr: true},
		{name: "zero", rate: 0, wantErr: true},
		{name: "not a number", rate: speedtest.ByteRate(math.NaN()), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := measured("download", tt.rate)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
