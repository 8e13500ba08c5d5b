package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bimo-labs/bimo/internal/fserr"
	"github.com/bimo-labs/bimo/internal/platform"
)

// MaxFileSize is the largest file ReadFile will load into memory.
const MaxFileSize = 8 << 20

// Entry is one child of a listed directory.
type Entry struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
}

// ReadDir lists the immediate children of dir, directories first and then
// alphabetically.
func ReadDir(dir string) ([]Entry, error) {
	const op = "read dir"
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fserr.Classify(op, dir, err)
	}

	des, err := os.ReadDir(abs)
	if err != nil {
		return nil, fserr.Classify(op, abs, err)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		entries = append(entries, Entry{
			Path:  filepath.Join(abs, de.Name()),
			Name:  de.Name(),
			IsDir: de.IsDir(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// ReadFile returns the contents of a regular file.
func ReadFile(path string) (string, error) {
	const op = "read file"
	info, err := os.Stat(path)
	if err != nil {
		return "", fserr.Classify(op, path, err)
	}
	if info.IsDir() {
		return "", fserr.Invalid(op, path, "is a directory")
	}
	if info.Size() > MaxFileSize {
		return "", fserr.Invalid(op, path, "file is %d bytes, limit is %d", info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fserr.Classify(op, path, err)
	}
	// Content travels as a JSON string; invalid bytes would come back as
	// U+FFFD and be saved that way.
	if !utf8.Valid(data) {
		return "", fserr.Invalid(op, path, "file is not valid UTF-8")
	}
	return string(data), nil
}

// WriteFile replaces path with content atomically: the data goes to a
// temporary file in the same directory which is then renamed over path. An
// existing file keeps its permission bits; a new file gets platform.FileMode.
// The parent directory must already exist, and content is capped at
// MaxFileSize so everything written stays readable by ReadFile.
func WriteFile(path, content string) error {
	const op = "write file"
	if len(content) > MaxFileSize {
		return fserr.Invalid(op, path, "content is %d bytes, limit is %d", len(content), MaxFileSize)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fserr.Invalid(op, path, "is a directory")
	}

	dir := filepath.Dir(path)
	mode := platform.ModeOf(path, platform.FileMode)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fserr.Classify(op, path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fserr.Classify(op, path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fserr.Classify(op, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fserr.Classify(op, path, err)
	}
	if err := platform.Chmod(tmpName, mode); err != nil {
		return fserr.Classify(op, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fserr.Classify(op, path, err)
	}
	committed = true
	return nil
}
