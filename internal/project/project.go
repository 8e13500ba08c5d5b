package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bimo-labs/bimo/internal/fserr"
	"github.com/bimo-labs/bimo/internal/platform"
)

// DirMode is the permission mode for newly created project directories.
const DirMode = platform.DirMode

const (
	opCreate = "create project"
	opOpen   = "open project"
)

// CreateRequest names the directory to create.
type CreateRequest struct {
	BaseDir string // existing directory; relative paths resolve against the working directory
	Name    string // single path element
}

// CreateResult reports where the project was created.
type CreateResult struct {
	CreatedPath string // absolute
}

// OpenResult describes an existing project directory.
type OpenResult struct {
	Path string // absolute
	Name string
}

// ValidateName rejects names that would not create exactly one new entry
// directly under the base directory.
func ValidateName(name string) error {
	if name == "" {
		return fserr.Invalid(opCreate, "", "project name is empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator) {
		return fserr.Invalid(opCreate, "", "project name %q contains a path separator", name)
	}
	if strings.ContainsRune(name, 0) {
		return fserr.Invalid(opCreate, "", "project name %q contains a NUL byte", name)
	}
	if name == "." || name == ".." {
		return fserr.Invalid(opCreate, "", "project name %q is reserved", name)
	}
	return nil
}

// Create makes the directory BaseDir/Name. The directory is created with a
// single exclusive mkdir, so when several callers race on the same name
// exactly one wins and the others get AlreadyExists. Nothing is touched on
// failure and missing parents are never created.
func Create(req CreateRequest) (*CreateResult, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}

	base, err := requireDir(opCreate, req.BaseDir)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(base, req.Name)
	if err := os.Mkdir(target, DirMode); err != nil {
		return nil, fserr.Classify(opCreate, target, err)
	}

	return &CreateResult{CreatedPath: target}, nil
}

// Open resolves path to an existing project directory.
func Open(path string) (*OpenResult, error) {
	dir, err := requireDir(opOpen, path)
	if err != nil {
		return nil, err
	}
	return &OpenResult{Path: dir, Name: filepath.Base(dir)}, nil
}

// requireDir returns the absolute, cleaned form of path after checking that
// it names an existing directory.
func requireDir(op, path string) (string, error) {
	if path == "" {
		return "", fserr.Invalid(op, "", "directory path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fserr.Classify(op, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fserr.Classify(op, abs, err)
	}
	if !info.IsDir() {
		return "", fserr.Invalid(op, abs, "not a directory")
	}
	return abs, nil
}
