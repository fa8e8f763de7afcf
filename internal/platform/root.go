package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot looks upwards from startDir for a vault marker: a .jot directory or a jot.yaml file.
// It returns the absolute path of the first directory that has one.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ".jot") || hasFile(dir, "jot.yaml") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("vault root not found from %s", abs)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
