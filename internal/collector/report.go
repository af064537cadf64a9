package collector

import (
	"fmt"

	"github.com/stone-age-io/termfetch/internal/probe"
)

// DiskUsedSentinel is reported when disk usage cannot be derived. It is never
// a plausible computed value.
const DiskUsedSentinel = -1.0

// HardwareReport is a snapshot of local machine facts. It is built once per
// request and never cached.
type HardwareReport struct {
	CPUName         probe.Result[string]  `json:"cpu_name" yaml:"cpu_name"`
	CPUCores        probe.Result[int]     `json:"cpu_cores" yaml:"cpu_cores"`
	RAMGiB          probe.Result[int]     `json:"ram_gib" yaml:"ram_gib"`
	OSName          probe.Result[string]  `json:"os_name" yaml:"os_name"`
	Username        probe.Result[string]  `json:"username" yaml:"username"`
	Hostname        probe.Result[string]  `json:"hostname" yaml:"hostname"`
	PlatformArch    string                `json:"platform_arch" yaml:"platform_arch"`
	DiskCapacityGiB probe.Result[float64] `json:"disk_capacity_gib" yaml:"disk_capacity_gib"`
	DiskFreeGiB     probe.Result[float64] `json:"disk_free_gib" yaml:"disk_free_gib"`
	DiskUsedGiB     probe.Result[float64] `json:"disk_used_gib" yaml:"disk_used_gib"`
}

// AddressKind selects which address Address looks up
type AddressKind string

const (
	PrivateIPv4 AddressKind = "private-v4"
	PrivateIPv6 AddressKind = "private-v6"
	PublicIPv4  AddressKind = "public-v4"
	PublicIPv6  AddressKind = "public-v6"
)

// AddressKinds lists every kind in display order
var AddressKinds = []AddressKind{PrivateIPv4, PrivateIPv6, PublicIPv4, PublicIPv6}

// ParseAddressKind validates a kind given on the command line
func ParseAddressKind(s string) (AddressKind, error) {
	for _, k := range AddressKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid address kind: %q (must be one of %v)", s, AddressKinds)
}

// Public reports whether the kind is resolved through a remote endpoint
func (k AddressKind) Public() bool {
	return k == PublicIPv4 || k == PublicIPv6
}

// AddressInfo is one resolved address. SubnetMask is only set for private IPv4
// addresses whose class has a default mask.
type AddressInfo struct {
	Kind       AddressKind          `json:"kind" yaml:"kind"`
	Address    probe.Result[string] `json:"address" yaml:"address"`
	SubnetMask string               `json:"subnet_mask,omitempty" yaml:"subnet_mask,omitempty"`
}

// String renders "ip/mask" when a mask is known, otherwise the address or its sentinel
func (a AddressInfo) String() string {
	if a.SubnetMask != "" {
		return a.Address.Value() + "/" + a.SubnetMask
	}
	return a.Address.Value()
}

// SpeedTestResult holds measured throughput in megabits per second
type SpeedTestResult struct {
	DownloadMbps float64 `json:"download_mbps" yaml:"download_mbps"`
	UploadMbps   float64 `json:"upload_mbps" yaml:"upload_mbps"`
}

// FailedHardware is the report for a collection that could not run: every fact
// carries its sentinel with err as the reason.
func FailedHardware(err error) HardwareReport {
	return HardwareReport{
		CPUName:         probe.Failed(probe.UnknownText, err),
		CPUCores:        probe.Failed(0, err),
		RAMGiB:          probe.Failed(0, err),
		OSName:          probe.Failed(probe.UnknownText, err),
		Username:        probe.Failed(probe.UnknownText, err),
		Hostname:        probe.Failed(probe.UnknownText, err),
		PlatformArch:    platformArch(),
		DiskCapacityGiB: probe.Failed(0.0, err),
		DiskFreeGiB:     probe.Failed(0.0, err),
		DiskUsedGiB:     probe.Failed(DiskUsedSentinel, err),
	}
}

// FailedAddress is the result for an address lookup that could not run
func FailedAddress(kind AddressKind, err error) AddressInfo {
	return AddressInfo{Kind: kind, Address: probe.Failed(probe.NotDetectable, err)}
}

// FailedSpeedTest is the result for a speed test that could not run
func FailedSpeedTest(err error) probe.Result[SpeedTestResult] {
	return probe.Failed(SpeedTestResult{}, err)
}
