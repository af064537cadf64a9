//go:build darwin

package probe

func platformTable() Table {
	return Table{
		Platform: "darwin",
		CPUName: Spec[string]{
			Command: "sysctl",
			Args:    []string{"-n", "machdep.cpu.brand_string"},
			Parse:   FirstLine,
		},
		RAMGiB: Spec[int]{
			Command: "sysctl",
			Args:    []string{"-n", "hw.memsize"},
			Parse:   Then(Line(0), RoundedGiBFromBytes),
		},
		OSName: Spec[string]{
			Command: "sh",
			Args:    []string{"-c", `echo "$(sw_vers -productName) $(sw_vers -productVersion)"`},
			Parse:   FirstLine,
		},
		// df -k /: header, then "<device> <1024-blocks> <used> <available> ..."
		DiskCapacity: Spec[float64]{
			Command: "df",
			Args:    []string{"-k", "/"},
			Parse:   Then(Then(Line(1), Field(1)), GiBFromKiB),
		},
		DiskFree: Spec[float64]{
			Command: "df",
			Args:    []string{"-k", "/"},
			Parse:   Then(Then(Line(1), Field(3)), GiBFromKiB),
		},
		PrivateIPv4: Spec[string]{
			Command: "ipconfig",
			Args:    []string{"getifaddr", "en0"},
			Parse:   Then(Line(0), Address(false)),
		},
		PrivateIPv6: Spec[string]{
			Command: "ifconfig",
			Args:    []string{"en0", "inet6"},
			Parse:   Then(Trimmed, Address(true)),
		},
		Env: EnvKeys{
			LogicalProcessors: "NPROC",
			Username:          "USER",
			Hostname:          "HOSTNAME",
		},
	}
}
