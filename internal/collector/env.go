package collector

import (
	"os"
	"os/user"
	"runtime"
)

// Environment looks up process environment variables
type Environment interface {
	Lookup(key string) (string, bool)
}

// OSEnvironment reads the real process environment
type OSEnvironment struct{}

// Lookup implements Environment.
func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is a fixed environment, used by tests and by callers that want
// to pin facts
type MapEnvironment map[string]string

// Lookup implements Environment.
func (m MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// fallbacks answer identity facts when the environment does not
type fallbacks struct {
	numCPU   func() int
	username func() (string, error)
	hostname func() (string, error)
}

func systemFallbacks() fallbacks {
	return fallbacks{
		numCPU: runtime.NumCPU,
		username: func() (string, error) {
			u, err := user.Current()
			if err != nil {
				return "", err
			}
			return u.Username, nil
		},
		hostname: os.Hostname,
	}
}
