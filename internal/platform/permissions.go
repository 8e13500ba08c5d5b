package platform

import (
	"os"
	"runtime"
)

// Default modes for files and directories bimo creates.
const (
	FileMode os.FileMode = 0644
	DirMode  os.FileMode = 0755
)

// Chmod sets permission bits. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode.Perm())
}

// ModeOf returns the permission bits of an existing file, or fallback when
// the file cannot be stat'ed.
func ModeOf(path string, fallback os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}
