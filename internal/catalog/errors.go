package catalog

import "fmt"

// LoadError reports a catalog source that could not be read, or a single
// line of it that could not be parsed.
type LoadError struct {
	// Source is the file path, or "input" for an anonymous reader.
	Source string

	// Line is the 1-based line (or worksheet row) number. Zero means the
	// source as a whole failed, for example because it could not be opened.
	Line int

	// Text is the offending line as read.
	Text string

	// Reason describes the failure.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("load catalog %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("load catalog %s: line %d %q: %s", e.Source, e.Line, e.Text, e.Reason)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// NotFoundError reports a query that matched no catalog entry.
type NotFoundError struct {
	Query string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no product matches %q", e.Query)
}
