package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultNetworkTimeout bounds each HTTPS attempt
	DefaultNetworkTimeout = 10 * time.Second

	// maxBodyBytes limits how much of an endpoint's answer is read
	maxBodyBytes = 64 * 1024
)

// NetworkProbe fetches a short text body over HTTPS. A verified request is tried
// first; if it fails for any reason the request is repeated once with certificate
// verification disabled.
type NetworkProbe struct {
	verified   *http.Client
	unverified *http.Client
	logger     *zap.Logger
}

// NewNetworkProbe creates a network probe whose attempts each time out after timeout
func NewNetworkProbe(timeout time.Duration, logger *zap.Logger) *NetworkProbe {
	if timeout <= 0 {
		timeout = DefaultNetworkTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	insecure := http.DefaultTransport.(*http.Transport).Clone()
	insecure.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // fallback attempt only

	return &NetworkProbe{
		verified:   &http.Client{Timeout: timeout},
		unverified: &http.Client{Timeout: timeout, Transport: insecure},
		logger:     logger,
	}
}

// NewNetworkProbeWithClients lets callers supply both clients, e.g. one trusting a
// test server's certificate
func NewNetworkProbeWithClients(verified, unverified *http.Client, logger *zap.Logger) *NetworkProbe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NetworkProbe{verified: verified, unverified: unverified, logger: logger}
}

// Fetch returns the trimmed body served at url, or "not detectable" when both
// attempts fail
func (p *NetworkProbe) Fetch(ctx context.Context, url string) Result[string] {
	body, err := p.get(ctx, p.verified, url)
	if err == nil {
		return Ok(body)
	}

	p.logger.Warn("Verified request failed, retrying without certificate verification",
		zap.String("url", url),
		zap.Error(err))

	body, err = p.get(ctx, p.unverified, url)
	if err != nil {
		p.logger.Warn("Unverified request failed",
			zap.String("url", url),
			zap.Error(err))
		return Failed(NotDetectable, NewError(KindNetwork, "", err))
	}

	return Ok(body)
}

func (p *NetworkProbe) get(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("request to %s timed out: %w", url, err)
		}
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code from %s: %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	p.logger.Debug("Request completed",
		zap.String("url", url),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return strings.TrimSpace(string(data)), nil
}
