package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateWorkDir(t *testing.T) {
	base := t.TempDir()

	dir1, err := CreateWorkDir(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir2, err := CreateWorkDir(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dir1 == dir2 {
		t.Errorf("work directories must not collide, got %s twice", dir1)
	}
	if filepath.Dir(dir1) != base {
		t.Errorf("work directory %s not under base %s", dir1, base)
	}

	info, err := os.Stat(dir1)
	if err != nil || !info.IsDir() {
		t.Errorf("expected %s to be a directory", dir1)
	}
}
