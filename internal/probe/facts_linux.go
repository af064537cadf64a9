//go:build linux

package probe

func platformTable() Table {
	return Table{
		Platform: "linux",
		CPUName: Spec[string]{
			Command: "lscpu",
			Parse:   KeyValue("Model name:"),
		},
		// free -b prints a header line, then "Mem: <total> <used> ..."
		RAMGiB: Spec[int]{
			Command: "free",
			Args:    []string{"-b"},
			Parse:   Then(Then(Line(1), Field(1)), RoundedGiBFromBytes),
		},
		OSName: Spec[string]{
			Command: "sh",
			Args:    []string{"-c", `. /etc/os-release && echo "$PRETTY_NAME"`},
			Parse:   FirstLine,
		},
		// df --output prints a two-line table: header, then the value
		DiskCapacity: Spec[float64]{
			Command: "df",
			Args:    []string{"-B1", "--output=size", "/"},
			Parse:   Then(Line(1), GiBFromBytes),
		},
		DiskFree: Spec[float64]{
			Command: "df",
			Args:    []string{"-B1", "--output=avail", "/"},
			Parse:   Then(Line(1), GiBFromBytes),
		},
		PrivateIPv4: Spec[string]{
			Command: "hostname",
			Args:    []string{"-I"},
			Parse:   Then(Line(0), Address(false)),
		},
		PrivateIPv6: Spec[string]{
			Command: "hostname",
			Args:    []string{"-I"},
			Parse:   Then(Line(0), Address(true)),
		},
		Env: EnvKeys{
			LogicalProcessors: "NPROC",
			Username:          "USER",
			Hostname:          "HOSTNAME",
		},
	}
}
