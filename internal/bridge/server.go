package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bimo-labs/bimo/internal/fserr"
	"github.com/rs/zerolog"
)

// maxLineSize bounds a single request line. It leaves room for a
// write_file_content request carrying a file at workspace.MaxFileSize.
// A var so tests can shrink it.
var maxLineSize = 32 << 20

type handler struct {
	call func(ctx context.Context, args json.RawMessage) (any, error)
}

// Server dispatches requests to registered commands, one at a time, in
// arrival order.
type Server struct {
	handlers map[string]handler
	log      zerolog.Logger
}

// NewServer returns a server with no commands registered.
func NewServer(log zerolog.Logger) *Server {
	return &Server{
		handlers: make(map[string]handler),
		log:      log,
	}
}

// Commands lists the registered command names, sorted.
func (s *Server) Commands() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// argsError reports arguments that failed schema validation.
type argsError struct {
	command string
	issues  []Issue
}

func (e *argsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s", e.command)
}

// Register adds a typed command. The command must have an argument schema
// under $defs in schema/commands.schema.json.
func Register[A, R any](s *Server, name string, fn func(ctx context.Context, args A) (R, error)) error {
	schema, err := argsSchema(name)
	if err != nil {
		return err
	}
	if _, dup := s.handlers[name]; dup {
		return fmt.Errorf("command %q registered twice", name)
	}

	s.handlers[name] = handler{
		call: func(ctx context.Context, raw json.RawMessage) (any, error) {
			if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				raw = json.RawMessage("{}")
			}
			issues, err := validateArgs(schema, raw)
			if err != nil {
				return nil, fserr.New(fserr.InvalidArgument, name, "", err)
			}
			if len(issues) > 0 {
				return nil, &argsError{command: name, issues: issues}
			}

			var args A
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fserr.New(fserr.InvalidArgument, name, "", err)
			}
			res, err := fn(ctx, args)
			if err != nil {
				return nil, err
			}
			return res, nil
		},
	}
	return nil
}

// Handle runs a single request and builds its response.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	h, ok := s.handlers[req.Command]
	if !ok {
		s.log.Warn().Int64("id", req.ID).Str("command", req.Command).Msg("unknown command")
		return Response{ID: req.ID, Error: &ErrorBody{
			Kind:    fserr.InvalidArgument,
			Message: fmt.Sprintf("unknown command %q", req.Command),
		}}
	}

	result, err := h.call(ctx, req.Args)
	if err != nil {
		body := errorBody(err)
		s.log.Warn().
			Int64("id", req.ID).
			Str("command", req.Command).
			Stringer("kind", body.Kind).
			Err(err).
			Msg("command failed")
		return Response{ID: req.ID, Error: body}
	}

	s.log.Debug().
		Int64("id", req.ID).
		Str("command", req.Command).
		Dur("took", time.Since(start)).
		Msg("command ok")
	return Response{ID: req.ID, Result: result}
}

func errorBody(err error) *ErrorBody {
	var ae *argsError
	if errors.As(err, &ae) {
		return &ErrorBody{Kind: fserr.InvalidArgument, Message: ae.Error(), Issues: ae.issues}
	}
	return &ErrorBody{Kind: fserr.KindOf(err), Message: err.Error()}
}

// errLineTooLong marks a request line longer than maxLineSize. The line is
// discarded and the loop keeps reading.
var errLineTooLong = errors.New("request line too long")

type inputLine struct {
	data []byte
	err  error // errLineTooLong or nil
}

// readLine returns the next newline-terminated line without the newline. A
// line over limit is drained to its end and reported as errLineTooLong.
func readLine(br *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit+1 {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		switch {
		case err == nil:
			if tooLong {
				return nil, errLineTooLong
			}
			return bytes.TrimRight(line, "\r\n"), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && (len(line) > 0 || tooLong):
			if tooLong {
				return nil, errLineTooLong
			}
			return bytes.TrimRight(line, "\r"), nil
		default:
			return nil, err
		}
	}
}

// Serve reads requests from r and writes one response line per request to w
// until r reaches EOF or ctx is cancelled. A line that is not a valid request,
// including one longer than maxLineSize, gets an error response with id 0 and
// does not stop the loop.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan inputLine)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		br := bufio.NewReaderSize(r, 64<<10)
		for {
			data, err := readLine(br, maxLineSize)
			if err != nil && !errors.Is(err, errLineTooLong) {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
			select {
			case lines <- inputLine{data: data, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	enc := json.NewEncoder(w)
	s.log.Info().Strs("commands", s.Commands()).Str("protocol", ProtocolVersion).Msg("bridge serving")

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("reading requests: %w", err)
				default:
				}
				s.log.Info().Msg("bridge input closed")
				return nil
			}

			var resp Response
			if line.err != nil {
				s.log.Warn().Int("limit", maxLineSize).Msg("request line too long")
				resp = Response{Error: &ErrorBody{
					Kind:    fserr.InvalidArgument,
					Message: fmt.Sprintf("request line exceeds %d bytes", maxLineSize),
				}}
			} else if len(bytes.TrimSpace(line.data)) == 0 {
				continue
			} else {
				var req Request
				if err := json.Unmarshal(line.data, &req); err != nil {
					resp = Response{Error: &ErrorBody{
						Kind:    fserr.InvalidArgument,
						Message: fmt.Sprintf("malformed request: %v", err),
					}}
				} else {
					resp = s.Handle(ctx, req)
				}
			}

			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}
