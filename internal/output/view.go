// Package output renders collector results for the dashboard and the console.
package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/probe"
)

// Line is one labelled value of a report
type Line struct {
	Label string
	Value string
}

// HardwareLines lists the identity and hardware facts of a report
func HardwareLines(r collector.HardwareReport) []Line {
	return []Line{
		{"os", show(r.OSName, identity)},
		{"cpu", show(r.CPUName, identity)},
		{"cpu cores", show(r.CPUCores, strconv.Itoa)},
		{"ram", show(r.RAMGiB, func(v int) string { return strconv.Itoa(v) + "GB" })},
		{"username", show(r.Username, identity)},
		{"hostname", show(r.Hostname, identity)},
		{"platform", r.PlatformArch},
	}
}

// DiskLines lists the disk facts of a report. Capacity is shown in whole GiB,
// free and used space with two decimals.
func DiskLines(r collector.HardwareReport) []Line {
	return []Line{
		{"capacity", show(r.DiskCapacityGiB, func(v float64) string {
			return strconv.Itoa(int(math.Round(v))) + "GB"
		})},
		{"free space", show(r.DiskFreeGiB, twoDecimalsGB)},
		{"used space", show(r.DiskUsedGiB, twoDecimalsGB)},
	}
}

// AddressTitle is the popup title for an address lookup
func AddressTitle(kind collector.AddressKind) string {
	return addressScope(kind) + " " + addressFamily(kind) + " address"
}

// AddressBusy is the busy message shown while an address is looked up
func AddressBusy(kind collector.AddressKind) string {
	return "fetching " + addressScope(kind) + " " + addressFamilyLower(kind) + " address"
}

// SpeedTestTitle and SpeedTestBody render a completed speed test
func SpeedTestTitle(r collector.SpeedTestResult) string {
	return fmt.Sprintf("download: %smb/s", twoDecimals(r.DownloadMbps))
}

func SpeedTestBody(r collector.SpeedTestResult) string {
	return fmt.Sprintf("upload: %smb/s", twoDecimals(r.UploadMbps))
}

func addressScope(kind collector.AddressKind) string {
	if kind.Public() {
		return "external"
	}
	return "internal"
}

func addressFamily(kind collector.AddressKind) string {
	if kind == collector.PrivateIPv6 || kind == collector.PublicIPv6 {
		return "IPv6"
	}
	return "IPv4"
}

func addressFamilyLower(kind collector.AddressKind) string {
	if kind == collector.PrivateIPv6 || kind == collector.PublicIPv6 {
		return "ipv6"
	}
	return "ipv4"
}

// show renders an Ok value with format. A failure shows its bare sentinel, so
// "0" and "-1" stay distinguishable from real sizes.
func show[T any](r probe.Result[T], format func(T) string) string {
	if !r.OK() {
		return fmt.Sprint(r.Value())
	}
	return format(r.Value())
}

func identity(s string) string { return s }

func twoDecimals(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func twoDecimalsGB(v float64) string {
	return twoDecimals(v) + "GB"
}
