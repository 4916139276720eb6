package build_test

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/codepad/build"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

func waitJob(t *testing.T, job *build.Job) build.Status {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := job.Wait(ctx)
	require.NoError(t, err)
	return st
}

func TestStart_NoCommand(t *testing.T) {
	job, err := build.Start(context.Background(), "  ", "")
	require.ErrorIs(t, err, build.ErrNoBuildCommand)

	st := waitJob(t, job)
	assert.Equal(t, build.StateFailed, st.State)
	assert.Equal(t, "FAILED (No build command)", job.Describe())
}

func TestStart_Completed(t *testing.T) {
	requireShell(t)

	job, err := build.Start(context.Background(), "echo built", "")
	require.NoError(t, err)

	_, err = uuid.Parse(job.ID)
	require.NoError(t, err)

	st := waitJob(t, job)
	assert.Equal(t, build.StateCompleted, st.State)
	assert.Regexp(t, `^COMPLETED \(took \d+ms\)$`, job.Describe())
	assert.Equal(t, "built\n", job.Output())
}

func TestStart_ExitCode(t *testing.T) {
	requireShell(t)

	job, err := build.Start(context.Background(), "exit 3", "")
	require.NoError(t, err)

	st := waitJob(t, job)
	assert.Equal(t, build.StateFailed, st.State)
	assert.Equal(t, 3, st.ExitCode)
	assert.Regexp(t, `^FAILED \(Exit code: 3\) \(took \d+ms\)$`, job.Describe())
}

func TestStart_RunsInDir(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	job, err := build.Start(context.Background(), "touch marker", dir)
	require.NoError(t, err)
	waitJob(t, job)

	_, err = os.Stat(filepath.Join(dir, "marker"))
	require.NoError(t, err)
}

func TestStop_KillsProcess(t *testing.T) {
	requireShell(t)

	job, err := build.Start(context.Background(), "exec sleep 10", "")
	require.NoError(t, err)

	running := job.Status()
	assert.Equal(t, build.StateStarted, running.State)
	assert.Positive(t, running.PID)

	job.Stop()
	st := waitJob(t, job)
	assert.Equal(t, build.StateFailed, st.State)
	assert.Equal(t, syscall.SIGKILL, st.Signal)
}

func TestIdle(t *testing.T) {
	job := build.Idle()
	assert.Equal(t, "IDLE", job.Describe())

	select {
	case <-job.Done():
	default:
		t.Fatal("idle job should be done")
	}
}

func TestStatus_Describe(t *testing.T) {
	tests := []struct {
		name   string
		status build.Status
		want   string
	}{
		{"idle", build.Status{}, "IDLE"},
		{"started", build.Status{State: build.StateStarted, PID: 42}, "STARTED (42)"},
		{"completed", build.Status{State: build.StateCompleted, Duration: 1500 * time.Millisecond}, "COMPLETED (took 1500ms)"},
		{"signal", build.Status{State: build.StateFailed, Signal: syscall.SIGTERM, Duration: time.Millisecond}, "FAILED (Terminated by signal: 15) (took 1ms)"},
		{"no command", build.Status{State: build.StateFailed, Err: build.ErrNoBuildCommand}, "FAILED (No build command)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Describe())
		})
	}
}
