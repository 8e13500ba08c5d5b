package fserr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not exist", fs.ErrNotExist, NotFound},
		{"exist", fs.ErrExist, AlreadyExists},
		{"permission", fs.ErrPermission, PermissionDenied},
		{"invalid", fs.ErrInvalid, InvalidArgument},
		{"other", errors.New("disk on fire"), Unknown},
		{"wrapped path error", &fs.PathError{Op: "mkdir", Path: "/x", Err: fs.ErrExist}, AlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("op", "/x", tt.err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassify_SyscallErrnos(t *testing.T) {
	tests := []struct {
		errno syscall.Errno
		want  Kind
	}{
		{syscall.EACCES, PermissionDenied},
		{syscall.EPERM, PermissionDenied},
		{syscall.EEXIST, AlreadyExists},
		{syscall.ENOENT, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.errno.Error(), func(t *testing.T) {
			err := Classify("create project", "/base/p", &fs.PathError{Op: "mkdir", Path: "/base/p", Err: tt.errno})
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestClassify_RealFilesystem(t *testing.T) {
	_, err := os.Stat(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, Is(Classify("stat", "missing", err), NotFound))
}

func TestClassify_KeepsExistingKind(t *testing.T) {
	inner := Invalid("create project", "", "name is empty")
	err := Classify("outer", "/y", fmt.Errorf("wrapping: %w", inner))
	assert.Equal(t, InvalidArgument, KindOf(err))
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify("op", "", nil))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, Unknown))
}

func TestError_Message(t *testing.T) {
	err := New(AlreadyExists, "create project", "/tmp/p", fs.ErrExist)
	assert.Equal(t, "create project /tmp/p: file already exists", err.Error())
	assert.Equal(t, "read dir", New(Unknown, "read dir", "", nil).Error())
}

func TestKind_JSON(t *testing.T) {
	data, err := json.Marshal(New(NotFound, "open project", "/nope", fs.ErrNotExist))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"NotFound","message":"open project /nope: file does not exist"}`, string(data))

	var k Kind
	require.NoError(t, json.Unmarshal([]byte(`"PermissionDenied"`), &k))
	assert.Equal(t, PermissionDenied, k)
	require.NoError(t, json.Unmarshal([]byte(`"Nonsense"`), &k))
	assert.Equal(t, Unknown, k)
}
