package probe

// Fact names one thing a probe can find out about the machine
type Fact string

const (
	FactCPUName      Fact = "cpu_name"
	FactCPUCores     Fact = "cpu_cores"
	FactRAM          Fact = "ram"
	FactOSName       Fact = "os_name"
	FactUsername     Fact = "username"
	FactHostname     Fact = "hostname"
	FactDiskCapacity Fact = "disk_capacity"
	FactDiskFree     Fact = "disk_free"
	FactDiskUsed     Fact = "disk_used"
	FactPrivateIPv4  Fact = "private_ipv4"
	FactPrivateIPv6  Fact = "private_ipv6"
	FactPublicIPv4   Fact = "public_ipv4"
	FactPublicIPv6   Fact = "public_ipv6"
	FactSubnetMask   Fact = "subnet_mask"
	FactSpeedTest    Fact = "speedtest"
)

// EnvKeys names the environment variables read directly for facts that need no
// subprocess
type EnvKeys struct {
	LogicalProcessors string
	Username          string
	Hostname          string
}

// Table is the per-platform list of commands, one entry per fact. Supporting another
// operating system means providing another Table, not changing probe logic.
type Table struct {
	Platform     string
	CPUName      Spec[string]
	RAMGiB       Spec[int]
	OSName       Spec[string]
	DiskCapacity Spec[float64]
	DiskFree     Spec[float64]
	PrivateIPv4  Spec[string]
	PrivateIPv6  Spec[string]
	Env          EnvKeys
}

// DefaultTable returns the table for the platform the binary was built for
func DefaultTable() Table {
	return platformTable()
}
