package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/1broseidon/windowkey/internal/runtimepath"
	"github.com/sevlyar/go-daemon"
)

// ErrNotRunning is returned by Stop when no detached daemon holds the pid file.
var ErrNotRunning = errors.New("windowkey is not running")

// DetachPaths are the files the detached process writes.
type DetachPaths struct {
	PidFile string
	LogFile string
}

// DefaultDetachPaths places the pid file in the runtime directory and the
// log under the state directory.
func DefaultDetachPaths() (DetachPaths, error) {
	pidFile, err := runtimepath.PidFilePath()
	if err != nil {
		return DetachPaths{}, err
	}
	logFile, err := runtimepath.LogFilePath()
	if err != nil {
		return DetachPaths{}, err
	}
	return DetachPaths{PidFile: pidFile, LogFile: logFile}, nil
}

func (p DetachPaths) context() *daemon.Context {
	return &daemon.Context{
		PidFileName: p.PidFile,
		PidFilePerm: 0o644,
		LogFileName: p.LogFile,
		LogFilePerm: 0o640,
		WorkDir:     "/",
		Umask:       027,
		Args:        os.Args,
	}
}

// Daemonize detaches the process and returns the child process handle.
// If the returned process is nil, this is the child process.
// If the returned process is non-nil, this is the parent process.
//
// The child must call Release on the returned context before it exits so
// the pid file is removed.
func Daemonize(paths DetachPaths) (*os.Process, *daemon.Context, error) {
	if err := os.MkdirAll(filepath.Dir(paths.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ctx := paths.context()
	child, err := ctx.Reborn()
	if err != nil {
		if errors.Is(err, daemon.ErrWouldBlock) {
			return nil, nil, fmt.Errorf("windowkey is already running (pid file %s)", paths.PidFile)
		}
		return nil, nil, fmt.Errorf("failed to daemonize: %w", err)
	}

	return child, ctx, nil
}

// Stop sends SIGTERM to the detached daemon named in the pid file.
func Stop(paths DetachPaths) (int, error) {
	proc, err := paths.context().Search()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("failed to read pid file: %w", err)
	}
	if proc == nil {
		return 0, ErrNotRunning
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("failed to signal pid %d: %w", proc.Pid, err)
	}
	return proc.Pid, nil
}

// IsChild reports whether this process was started by Daemonize.
func IsChild() bool {
	return daemon.WasReborn()
}
