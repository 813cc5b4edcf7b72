// Package runtimepath resolves where deskshell keeps per-user files that are
// not configuration: the IPC socket and the log file.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SocketEnv overrides the socket location for every client and server
	// started in the environment.
	SocketEnv = "DESKSHELL_SOCKET"

	socketName = "deskshell.sock"
	logName    = "deskshell.log"
)

// Dir returns the runtime directory for the socket, in order of preference:
// $XDG_RUNTIME_DIR, /run/user/<uid> when present, then a private
// /tmp/deskshell-runtime-<uid> that is created on demand.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}

	dir := filepath.Join(os.TempDir(), fmt.Sprintf("deskshell-runtime-%d", uid))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return dir, nil
}

// SocketPath returns the path of the running desktop's IPC socket.
func SocketPath() (string, error) {
	if p := os.Getenv(SocketEnv); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, socketName), nil
}

// StateDir returns $XDG_STATE_HOME/deskshell, defaulting to
// ~/.local/state/deskshell. The directory is not created.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "deskshell")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "deskshell")
	}
	return filepath.Join(home, ".local", "state", "deskshell")
}

// LogFile is the default desktop log location.
func LogFile() string {
	return filepath.Join(StateDir(), logName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
