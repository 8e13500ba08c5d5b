// Package fserr defines the typed failures returned by bimo's filesystem
// operations. Every failure carries one of a small, closed set of kinds that
// the CLI and the bridge report verbatim.
package fserr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a failure.
type Kind int

const (
	Unknown Kind = iota
	InvalidArgument
	NotFound
	AlreadyExists
	PermissionDenied
)

var kindNames = map[Kind]string{
	Unknown:          "Unknown",
	InvalidArgument:  "InvalidArgument",
	NotFound:         "NotFound",
	AlreadyExists:    "AlreadyExists",
	PermissionDenied: "PermissionDenied",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name so JSON carries "AlreadyExists", not 3.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name. Unrecognized names become Unknown.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	*k = Unknown
	return nil
}

var _ json.Marshaler = (*Error)(nil)

// Error is a classified filesystem failure.
type Error struct {
	Kind Kind
	Op   string // e.g. "create project", "read dir"
	Path string // may be empty when no path is involved
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// MarshalJSON flattens the error into the wire shape used by the bridge.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    Kind   `json:"kind"`
		Message string `json:"message"`
	}{e.Kind, e.Error()})
}

// New builds an Error with an explicit kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Invalid builds an InvalidArgument error from a formatted message.
func Invalid(op, path, format string, args ...any) *Error {
	return New(InvalidArgument, op, path, fmt.Errorf(format, args...))
}

// Classify wraps err with the kind matching the underlying fs error. An err
// that is already an *Error keeps its kind. Classify(nil) returns nil.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return New(kindOfFS(err), op, path, err)
}

func kindOfFS(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, fs.ErrInvalid):
		return InvalidArgument
	default:
		return Unknown
	}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
