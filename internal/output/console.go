package output

import (
	"fmt"
	"io"
	"sync"
)

// Console is a task surface for headless commands. Busy and error messages go to
// errOut, results to out. Calls from concurrent workers are serialized.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	busy   map[string]struct{}
	errors int
}

// NewConsole creates a console surface
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, errOut: errOut, busy: map[string]struct{}{}}
}

func (c *Console) ShowBusy(id, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[id] = struct{}{}
	fmt.Fprintf(c.errOut, "%s...\n", message)
}

func (c *Console) DismissBusy(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, id)
}

func (c *Console) ShowResult(title, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if title != "" {
		fmt.Fprintln(c.out, title)
	}
	fmt.Fprint(c.out, body)
}

func (c *Console) ShowError(title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors++
	fmt.Fprintf(c.errOut, "error: %s: %s\n", title, message)
}

// Busy returns the number of busy indicators not yet dismissed
func (c *Console) Busy() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.busy)
}

// Errors returns how many errors have been shown
func (c *Console) Errors() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors
}
