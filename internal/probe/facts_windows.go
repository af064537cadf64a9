//go:build windows

package probe

func platformTable() Table {
	return Table{
		Platform: "windows",
		CPUName: Spec[string]{
			Command: "wmic",
			Args:    []string{"cpu", "get", "name"},
			Parse:   Line(1),
		},
		RAMGiB: Spec[int]{
			Command: "powershell.exe",
			Args: []string{
				"-command",
				"[Math]::Round((Get-WmiObject -Class Win32_ComputerSystem).TotalPhysicalMemory/1GB)",
			},
			Parse: Then(Line(0), Int),
		},
		OSName: Spec[string]{
			Command: "powershell.exe",
			Args:    []string{"-command", "(Get-WmiObject -class Win32_OperatingSystem).Caption"},
			Parse:   FirstLine,
		},
		DiskCapacity: Spec[float64]{
			Command: "powershell.exe",
			Args:    []string{"-command", "wmic", "logicaldisk", "get", "size"},
			Parse:   Then(Line(1), GiBFromBytes),
		},
		DiskFree: Spec[float64]{
			Command: "wmic",
			Args:    []string{"logicaldisk", "get", "freespace"},
			Parse:   Then(Line(1), GiBFromBytes),
		},
		PrivateIPv4: Spec[string]{
			Command: "powershell.exe",
			Args: []string{
				"-command",
				"(Test-Connection -ComputerName (hostname) -Count 1).IPV4Address.IPAddressToString",
			},
			Parse: Then(Line(0), Address(false)),
		},
		PrivateIPv6: Spec[string]{
			Command: "powershell.exe",
			Args: []string{
				"-command",
				"(Test-Connection -ComputerName (hostname) -Count 1).IPV6Address.IPAddressToString",
			},
			Parse: FirstLine,
		},
		Env: EnvKeys{
			LogicalProcessors: "NUMBER_OF_PROCESSORS",
			Username:          "USERNAME",
			Hostname:          "COMPUTERNAME",
		},
	}
}
