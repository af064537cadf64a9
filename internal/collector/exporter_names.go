package collector

import "runtime"

// ExporterNames defines platform-specific Prometheus metric and label names
type ExporterNames struct {
	CPUInfo      string // Gauge (always 1) labelled with the CPU model
	CPUNameLabel string
	MemoryTotal  string // Gauge: physical memory bytes
	DiskSize     string // Gauge: volume size bytes
	DiskFree     string // Gauge: volume free bytes
	VolumeLabel  string // Label name for the volume identifier
	RootVolume   string // Label value of the system volume
	OSInfo       string // Gauge (always 1) labelled with the OS name
	OSNameLabel  string
}

// GetExporterNames returns the metric names of the exporter expected on this platform
func GetExporterNames() ExporterNames {
	switch runtime.GOOS {
	case "windows":
		return ExporterNames{
			CPUInfo:      "windows_cpu_info",
			CPUNameLabel: "name",
			MemoryTotal:  "windows_memory_physical_total_bytes",
			DiskSize:     "windows_logical_disk_size_bytes",
			DiskFree:     "windows_logical_disk_free_bytes",
			VolumeLabel:  "volume",
			RootVolume:   "C:",
			OSInfo:       "windows_os_info",
			OSNameLabel:  "product",
		}
	default:
		// node_exporter on linux, freebsd and darwin
		return ExporterNames{
			CPUInfo:      "node_cpu_info",
			CPUNameLabel: "model_name",
			MemoryTotal:  "node_memory_MemTotal_bytes",
			DiskSize:     "node_filesystem_size_bytes",
			DiskFree:     "node_filesystem_avail_bytes",
			VolumeLabel:  "mountpoint",
			RootVolume:   "/",
			OSInfo:       "node_os_info",
			OSNameLabel:  "pretty_name",
		}
	}
}

// GetExporterName returns the name of the exporter expected on this platform
func GetExporterName() string {
	if runtime.GOOS == "windows" {
		return "windows_exporter"
	}
	return "node_exporter"
}
