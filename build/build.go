// Package build runs the project build command in the background.
package build

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

var ErrNoBuildCommand = errors.New("no build command")

type State int

const (
	StateIdle State = iota
	StateStarted
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarted:
		return "STARTED"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is a snapshot of a job
type Status struct {
	State    State
	PID      int
	ExitCode int
	Signal   syscall.Signal // Set when the process was killed by a signal
	Duration time.Duration
	Err      error // Why the job could not start
}

// Describe renders the status the way the status bar shows it
func (s Status) Describe() string {
	took := fmt.Sprintf(" (took %dms)", s.Duration.Milliseconds())

	switch s.State {
	case StateStarted:
		return fmt.Sprintf("STARTED (%d)", s.PID)
	case StateCompleted:
		return "COMPLETED" + took
	case StateFailed:
		switch {
		case errors.Is(s.Err, ErrNoBuildCommand):
			return "FAILED (No build command)"
		case s.Err != nil:
			return "FAILED (Start error)"
		case s.Signal != 0:
			return fmt.Sprintf("FAILED (Terminated by signal: %d)", int(s.Signal)) + took
		default:
			return fmt.Sprintf("FAILED (Exit code: %d)", s.ExitCode) + took
		}
	default:
		return "IDLE"
	}
}

// Job is a handle on one build run. It is safe for concurrent use.
type Job struct {
	ID      string
	Command string
	Dir     string

	mu     sync.Mutex
	status Status
	output strings.Builder
	start  time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// Idle returns a job that never ran, for status display before the first build.
func Idle() *Job {
	done := make(chan struct{})
	close(done)
	return &Job{status: Status{State: StateIdle}, done: done}
}

// Start runs command through /bin/sh in dir. The returned job is already
// finished and failed when command is empty or the process cannot start;
// the error is returned as well.
func Start(ctx context.Context, command, dir string) (*Job, error) {
	ctx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:      uuid.New().String(),
		Command: command,
		Dir:     dir,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	if strings.TrimSpace(command) == "" {
		job.finish(Status{State: StateFailed, Err: ErrNoBuildCommand})
		return job, ErrNoBuildCommand
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdout = (*jobWriter)(job)
	cmd.Stderr = (*jobWriter)(job)

	job.start = time.Now()
	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("starting build: %w", err)
		job.finish(Status{State: StateFailed, Err: err})
		return job, err
	}

	job.mu.Lock()
	job.status = Status{State: StateStarted, PID: cmd.Process.Pid}
	job.mu.Unlock()
	log.Printf("build process started (pid %d): %s", cmd.Process.Pid, command)

	go job.wait(cmd)

	return job, nil
}

func (j *Job) wait(cmd *exec.Cmd) {
	err := cmd.Wait()
	st := Status{
		State:    StateCompleted,
		PID:      cmd.Process.Pid,
		Duration: time.Since(j.start),
	}

	if err != nil {
		st.State = StateFailed
		st.ExitCode = -1
		if ps := cmd.ProcessState; ps != nil {
			st.ExitCode = ps.ExitCode()
			if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				st.Signal = ws.Signal()
			}
		}
	}

	log.Printf("build %s finished: %s", j.ID, st.Describe())
	j.finish(st)
}

func (j *Job) finish(st Status) {
	j.mu.Lock()
	j.status = st
	j.mu.Unlock()
	if j.cancel != nil {
		j.cancel()
	}
	close(j.done)
}

// Status returns the current status
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Describe is shorthand for Status().Describe()
func (j *Job) Describe() string {
	return j.Status().Describe()
}

// Output returns the combined stdout and stderr captured so far
func (j *Job) Output() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.output.String()
}

// Done is closed once the job has finished
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) (Status, error) {
	select {
	case <-j.done:
		return j.Status(), nil
	case <-ctx.Done():
		return j.Status(), ctx.Err()
	}
}

// Stop kills a running job
func (j *Job) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
}

type jobWriter Job

func (w *jobWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.output.Write(p)
}
