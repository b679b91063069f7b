package session

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome = "JOURNAL_BACKEND_STATE_HOME" // override for tests
	dirName = ".journal-server"            // default under $HOME
)

// StateDir returns the directory where local state is stored
// (~/.journal-server). It creates the directory with 0700 permissions if it
// does not exist.
func StateDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
