package project

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/bimo-labs/bimo/internal/fserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entries lists the names directly under dir.
func entries(t *testing.T, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(des))
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}

func TestCreate(t *testing.T) {
	base := t.TempDir()

	res, err := Create(CreateRequest{BaseDir: base, Name: "MyNewProject"})
	require.NoError(t, err)

	want := filepath.Join(base, "MyNewProject")
	assert.Equal(t, want, res.CreatedPath)
	assert.True(t, filepath.IsAbs(res.CreatedPath))

	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, []string{"MyNewProject"}, entries(t, base))
	assert.Empty(t, entries(t, want), "project directory should be empty")
}

func TestCreate_Twice(t *testing.T) {
	base := t.TempDir()
	req := CreateRequest{BaseDir: base, Name: "game"}

	_, err := Create(req)
	require.NoError(t, err)

	_, err = Create(req)
	require.Error(t, err)
	assert.Equal(t, fserr.AlreadyExists, fserr.KindOf(err))
	assert.Equal(t, []string{"game"}, entries(t, base))
}

func TestCreate_OccupiedByFile(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "taken"), []byte("x"), 0644))

	_, err := Create(CreateRequest{BaseDir: base, Name: "taken"})
	assert.True(t, fserr.Is(err, fserr.AlreadyExists), "got %v", err)

	data, err := os.ReadFile(filepath.Join(base, "taken"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestCreate_InvalidNames(t *testing.T) {
	names := []string{"", "a/b", `a\b`, "/abs", ".", "..", "nul\x00byte"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			base := t.TempDir()
			_, err := Create(CreateRequest{BaseDir: base, Name: name})
			require.Error(t, err)
			assert.Equal(t, fserr.InvalidArgument, fserr.KindOf(err))
			assert.Empty(t, entries(t, base))
		})
	}
}

func TestCreate_MissingBase(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "does-not-exist")

	_, err := Create(CreateRequest{BaseDir: base, Name: "p"})
	require.Error(t, err)
	assert.Equal(t, fserr.NotFound, fserr.KindOf(err))
	assert.NoDirExists(t, base)
	assert.Empty(t, entries(t, root))
}

func TestCreate_BaseIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := Create(CreateRequest{BaseDir: file, Name: "p"})
	assert.Equal(t, fserr.InvalidArgument, fserr.KindOf(err))
}

func TestCreate_EmptyBase(t *testing.T) {
	_, err := Create(CreateRequest{Name: "p"})
	assert.Equal(t, fserr.InvalidArgument, fserr.KindOf(err))
}

func TestCreate_RelativeBase(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	res, err := Create(CreateRequest{BaseDir: ".", Name: "rel"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(res.CreatedPath))
	assert.DirExists(t, filepath.Join(base, "rel"))
}

func TestCreate_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}
	base := t.TempDir()
	require.NoError(t, os.Chmod(base, 0555))
	t.Cleanup(func() { _ = os.Chmod(base, 0755) })

	_, err := Create(CreateRequest{BaseDir: base, Name: "p"})
	require.Error(t, err)
	assert.Equal(t, fserr.PermissionDenied, fserr.KindOf(err))
	assert.Empty(t, entries(t, base))
}

func TestCreate_ConcurrentSameName(t *testing.T) {
	base := t.TempDir()
	const callers = 16

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = Create(CreateRequest{BaseDir: base, Name: "race"})
		}()
	}
	wg.Wait()

	var ok, exists int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case fserr.Is(err, fserr.AlreadyExists):
			exists++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, exists)
	assert.Equal(t, []string{"race"}, entries(t, base))
}

func TestCreate_ConcurrentDifferentNames(t *testing.T) {
	base := t.TempDir()
	names := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Create(CreateRequest{BaseDir: base, Name: name})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, names, entries(t, base))
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "level-one")
	require.NoError(t, os.Mkdir(dir, 0755))

	res, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, res.Path)
	assert.Equal(t, "level-one", res.Name)
}

func TestOpen_Errors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := Open(filepath.Join(root, "missing"))
	assert.Equal(t, fserr.NotFound, fserr.KindOf(err))

	_, err = Open(file)
	assert.Equal(t, fserr.InvalidArgument, fserr.KindOf(err))

	_, err = Open("")
	assert.Equal(t, fserr.InvalidArgument, fserr.KindOf(err))
}
