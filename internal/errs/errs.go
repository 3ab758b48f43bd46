package errs

import (
	"errors"
	"fmt"
)

// Kind names the pipeline stage an error came from.
type Kind string

const (
	KindConfig    Kind = "config"
	KindSearch    Kind = "search"
	KindSelection Kind = "selection"
	KindFetch     Kind = "fetch"
	KindBuild     Kind = "build"
	KindExport    Kind = "export"
	KindServer    Kind = "server"
	KindUnknown   Kind = "unknown"
)

var exitCodes = map[Kind]int{
	KindConfig:    2,
	KindSearch:    3,
	KindSelection: 4,
	KindFetch:     5,
	KindBuild:     6,
	KindExport:    7,
	KindServer:    8,
}

// Error wraps a stage failure with the operation that failed.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, so errors.Is(err, &Error{Kind: KindFetch})
// works regardless of Op.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

func E(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func Config(op string, err error) error    { return E(op, KindConfig, err) }
func Search(op string, err error) error    { return E(op, KindSearch, err) }
func Selection(op string, err error) error { return E(op, KindSelection, err) }
func Fetch(op string, err error) error     { return E(op, KindFetch, err) }
func Build(op string, err error) error     { return E(op, KindBuild, err) }
func Export(op string, err error) error    { return E(op, KindExport, err) }
func Server(op string, err error) error    { return E(op, KindServer, err) }

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps err to the process exit status. nil maps to 0 and errors
// without a known kind map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[KindOf(err)]; ok {
		return code
	}
	return 1
}

// SchemaError reports a remote payload that is missing an expected field or
// carries one that fails validation.
type SchemaError struct {
	Schema string
	Field  string
	Rule   string
}

func (e *SchemaError) Error() string {
	if e.Rule == "" || e.Rule == "required" {
		return fmt.Sprintf("schema %s: missing field %s", e.Schema, e.Field)
	}
	return fmt.Sprintf("schema %s: field %s fails %q", e.Schema, e.Field, e.Rule)
}

// InvalidSelectionError is returned when the operator picks an index outside
// the candidate list or types something that is not a number.
type InvalidSelectionError struct {
	Index int
	Count int
	Input string
}

func (e *InvalidSelectionError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid selection %q: expected a number between 1 and %d", e.Input, e.Count)
	}
	if e.Count == 0 {
		return fmt.Sprintf("invalid selection %d: no candidates to choose from", e.Index)
	}
	return fmt.Sprintf("invalid selection %d: expected a number between 1 and %d", e.Index, e.Count)
}
