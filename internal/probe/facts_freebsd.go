//go:build freebsd

package probe

func platformTable() Table {
	return Table{
		Platform: "freebsd",
		CPUName: Spec[string]{
			Command: "sysctl",
			Args:    []string{"-n", "hw.model"},
			Parse:   FirstLine,
		},
		RAMGiB: Spec[int]{
			Command: "sysctl",
			Args:    []string{"-n", "hw.physmem"},
			Parse:   Then(Line(0), RoundedGiBFromBytes),
		},
		OSName: Spec[string]{
			Command: "uname",
			Args:    []string{"-sr"},
			Parse:   FirstLine,
		},
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
			Command: "ifconfig",
			Args:    []string{"-a", "inet"},
			Parse:   Then(Trimmed, Address(false)),
		},
		PrivateIPv6: Spec[string]{
			Command: "ifconfig",
			Args:    []string{"-a", "inet6"},
			Parse:   Then(Trimmed, Address(true)),
		},
		Env: EnvKeys{
			LogicalProcessors: "NPROC",
			Username:          "USER",
			Hostname:          "HOSTNAME",
		},
	}
}
