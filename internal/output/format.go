package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/probe"
	"gopkg.in/yaml.v3"
)

// Format selects how headless commands print their result
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be text, json, or yaml)", s)
	}
}

// WriteHardware prints a hardware report
func WriteHardware(w io.Writer, f Format, r collector.HardwareReport) error {
	lines := append(HardwareLines(r), DiskLines(r)...)
	return write(w, f, r, lines)
}

// WriteAddress prints one address
func WriteAddress(w io.Writer, f Format, info collector.AddressInfo) error {
	return write(w, f, info, []Line{{AddressTitle(info.Kind), info.String()}})
}

// WriteSpeedTest prints a speed test result. A failed run prints its reason in
// place of the throughput.
func WriteSpeedTest(w io.Writer, f Format, r probe.Result[collector.SpeedTestResult]) error {
	lines := []Line{{"error", r.Reason()}}
	if r.OK() {
		lines = []Line{
			{"download", twoDecimals(r.Value().DownloadMbps) + " Mbit/s"},
			{"upload", twoDecimals(r.Value().UploadMbps) + " Mbit/s"},
		}
	}
	return write(w, f, r, lines)
}

func write(w io.Writer, f Format, v any, lines []Line) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, Text(lines))
		return err
	}
}

// Text aligns lines as "label  --> value", padding by display width so wide
// characters in labels keep the arrows in one column
func Text(lines []Line) string {
	width := 0
	for _, l := range lines {
		if n := runewidth.StringWidth(l.Label); n > width {
			width = n
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(runewidth.FillRight(l.Label, width))
		b.WriteString("  --> ")
		b.WriteString(l.Value)
		b.WriteByte('\n')
	}
	return b.String()
}
