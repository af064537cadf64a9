//go:build !windows && !linux && !darwin && !freebsd

package probe

import "runtime"

// platformTable leaves every command empty, so each fact fails with a
// "not supported" reason and reports its sentinel
func platformTable() Table {
	return Table{
		Platform: runtime.GOOS,
		Env: EnvKeys{
			LogicalProcessors: "NPROC",
			Username:          "USER",
			Hostname:          "HOSTNAME",
		},
	}
}
