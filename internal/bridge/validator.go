package bridge

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "commands.schema.json"

//go:embed schema/commands.schema.json
var schemaBytes []byte

var (
	compiler    *jsonschema.Compiler
	compilerErr error
	compileOnce sync.Once
	printer     = message.NewPrinter(language.English)

	schemaMu sync.Mutex
	schemas  = map[string]*jsonschema.Schema{}
)

// errNoSchema is returned for commands with no entry in the schema document.
var errNoSchema = errors.New("no argument schema")

func loadCompiler() (*jsonschema.Compiler, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compilerErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compilerErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiler = c
	})
	return compiler, compilerErr
}

// argsSchema returns the compiled argument schema for a command.
func argsSchema(command string) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemas[command]; ok {
		return s, nil
	}
	c, err := loadCompiler()
	if err != nil {
		return nil, err
	}
	s, err := c.Compile(schemaURL + "#/$defs/" + command)
	if err != nil {
		return nil, fmt.Errorf("%w for %q: %v", errNoSchema, command, err)
	}
	schemas[command] = s
	return s, nil
}

// validateArgs checks raw JSON arguments against schema. It returns the
// schema issues, or an error when the arguments are not JSON at all.
func validateArgs(schema *jsonschema.Schema, raw []byte) ([]Issue, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing arguments: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}, nil
	}
	return dedupe(issues), nil
}

// collectIssues walks the error tree down to the leaves, which name the
// specific property and keyword that failed.
func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	if ve.ErrorKind == nil {
		return
	}
	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	if keyword == "" || keyword == "$ref" || keyword == "allOf" {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	*issues = append(*issues, Issue{
		Path:    path,
		Keyword: keyword,
		Message: ve.ErrorKind.LocalizedString(printer),
	})
}

func dedupe(issues []Issue) []Issue {
	seen := make(map[Issue]bool, len(issues))
	out := issues[:0]
	for _, is := range issues {
		if !seen[is] {
			seen[is] = true
			out = append(out, is)
		}
	}
	return out
}
