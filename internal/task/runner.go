// Package task runs blocking probes off the UI goroutine and reports their
// lifecycle to a Surface.
package task

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Surface is what a task needs from the display. ShowBusy is called on the
// goroutine that calls Go; every other method is called from workers. Calls
// must be applied in the order they were made. The id passed to DismissBusy is
// the one its ShowBusy received.
type Surface interface {
	ShowBusy(id, message string)
	DismissBusy(id string)
	ShowResult(title, body string)
	ShowError(title, message string)
}

// Job describes one background invocation
type Job[T any] struct {
	// Name identifies the job in logs and error popups
	Name string
	// Busy is shown while the job runs
	Busy string
	// Invoke does the blocking work. It must not touch the surface.
	Invoke func() T
	// Recover turns a panic in Invoke into a result. When nil the panic is
	// shown as an error and onComplete receives the zero value.
	Recover func(err error) T
}

// Runner starts one goroutine per job. There is no pool and no queue.
type Runner struct {
	surface  Surface
	logger   *zap.Logger
	inFlight atomic.Int64
	wg       sync.WaitGroup
}

// NewRunner creates a runner reporting to surface
func NewRunner(surface Surface, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{surface: surface, logger: logger}
}

// Go shows the busy indicator, then runs job on a new goroutine. When Invoke
// returns the indicator is dismissed and onComplete is called exactly once with
// the result, on the worker goroutine. If Invoke panics, onComplete still runs
// once, with the result of job.Recover.
func Go[T any](r *Runner, job Job[T], onComplete func(T)) {
	id := uuid.NewString()
	logger := r.logger.With(zap.String("task", job.Name), zap.String("task_id", id))

	r.surface.ShowBusy(id, job.Busy)
	r.inFlight.Add(1)
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		defer r.inFlight.Add(-1)

		start := time.Now()
		logger.Debug("Task started")

		result, stack, err := invoke(job.Invoke)
		r.surface.DismissBusy(id)

		if err != nil {
			logger.Error("Task panicked",
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
				zap.ByteString("stack", stack))
			if job.Recover != nil {
				result = job.Recover(err)
			} else {
				r.surface.ShowError(job.Name, err.Error())
			}
		} else {
			logger.Debug("Task finished", zap.Duration("duration", time.Since(start)))
		}

		if onComplete != nil {
			onComplete(result)
		}
	}()
}

// invoke runs fn, converting a panic into an error and the panicking stack
func invoke[T any](fn func() T) (result T, stack []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
			stack = debug.Stack()
		}
	}()
	return fn(), nil, nil
}

// InFlight returns the number of jobs still running
func (r *Runner) InFlight() int {
	return int(r.inFlight.Load())
}

// Wait blocks until every started job has finished
func (r *Runner) Wait() {
	r.wg.Wait()
}
