package bridge

import (
	"encoding/json"

	"github.com/bimo-labs/bimo/internal/fserr"
)

// Request is one line read from the client.
type Request struct {
	ID      int64           `json:"id"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response is one line written back. Exactly one of Result and Error is set.
type Response struct {
	ID     int64      `json:"id"`
	Result any        `json:"result,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the typed failure returned to the client.
type ErrorBody struct {
	Kind    fserr.Kind `json:"kind"`
	Message string     `json:"message"`
	Issues  []Issue    `json:"issues,omitempty"`
}

// Issue is a single schema violation in a request's arguments.
type Issue struct {
	Path    string `json:"path"`    // instance location, e.g. "/projectName"
	Keyword string `json:"keyword"` // failing schema keyword, e.g. "required"
	Message string `json:"message"`
}

// Empty is the result of commands that return nothing.
type Empty struct{}
