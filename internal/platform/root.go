package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned by FindRoot when no project marker exists.
var ErrRootNotFound = errors.New("root not found")

// Project markers recognised by FindRoot.
const (
	ConfigFileName = "noteboard.yaml"
	SystemDirName  = ".noteboard"
)

// FindRoot recursively looks upwards for a noteboard project root.
// Indicators are a noteboard.yaml file or a .noteboard directory.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName) || hasFile(dir, SystemDirName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

// ConfigPaths returns the directories searched for noteboard.yaml, most specific first.
func ConfigPaths() []string {
	var paths []string
	if wd, err := os.Getwd(); err == nil {
		if root, err := FindRoot(wd); err == nil {
			paths = append(paths, root)
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "noteboard"))
	}
	return paths
}

// DefaultStorageDir is where likes are persisted when no directory is configured.
func DefaultStorageDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "noteboard")
	}
	return SystemDirName
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
