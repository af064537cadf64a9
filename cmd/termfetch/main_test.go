package main

import "testing"

func TestCommandTree(t *testing.T) {
	cmd := newCommand()
	for _, name := range []string{"hardware", "address", "speedtest"} {
		if cmd.Command(name) == nil {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
