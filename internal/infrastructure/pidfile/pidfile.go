package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// AlreadyRunningError is returned by Acquire when a live process owns the file
type AlreadyRunningError struct {
	Path string
	PID  int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("craftchain-daemon is already running (PID %d, %s)", e.PID, e.Path)
}

// PIDFile keeps a single daemon instance per pid file path
type PIDFile struct {
	path string
	pid  int
}

// New creates a PIDFile for the current process
func New(path string) *PIDFile {
	return &PIDFile{path: path, pid: os.Getpid()}
}

// Path returns the pid file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current pid. A file left by a dead process, or one that
// does not hold a pid, is replaced.
func (p *PIDFile) Acquire() error {
	for attempt := 0; attempt < 2; attempt++ {
		err := p.create()
		if err == nil {
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to create PID file: %w", err)
		}

		owner, err := p.Owner()
		if err == nil && owner != p.pid && isProcessRunning(owner) {
			return &AlreadyRunningError{Path: p.path, PID: owner}
		}
		if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale PID file: %w", err)
		}
	}
	return fmt.Errorf("failed to acquire PID file %s: lost race with another process", p.path)
}

func (p *PIDFile) create() error {
	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%d\n", p.pid); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Owner reads the pid recorded in the file
func (p *PIDFile) Owner() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("PID file %s is corrupt: %w", p.path, err)
	}
	return pid, nil
}

// Release removes the file if it still records this process
func (p *PIDFile) Release() error {
	owner, err := p.Owner()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err == nil && owner != p.pid {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning probes pid with signal 0. EPERM means the process exists
// but belongs to another user.
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		return true
	default:
		return false
	}
}
