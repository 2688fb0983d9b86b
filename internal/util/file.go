package util

import (
	"fmt"
	"os"
)

func GetTempDir() string {
	return fmt.Sprintf("%s/cropbox", os.TempDir())
}

// CreateWorkDir makes a fresh per-request directory under base (or the
// default temp dir when base is empty). Concurrent requests never share a
// workspace, so external tools can run in parallel without coordination.
func CreateWorkDir(base string) (string, error) {
	if base == "" {
		base = GetTempDir()
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	return os.MkdirTemp(base, "request-*")
}
