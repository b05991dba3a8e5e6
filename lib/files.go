package lib

import (
	"os"
	"path/filepath"
)

// FileExists does?
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// RealQuickPath makes path absolute and follows symlinks, falling back to the
// absolute (or given) path when that is not possible.
func RealQuickPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
