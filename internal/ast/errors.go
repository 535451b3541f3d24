package ast

import "fmt"

// Error is a {Kind, Message} pair identifying a query-evaluation failure
// class, matching query.c's QueryError pattern.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("query error (%s): %s", e.Kind, e.Message)
}

func errParseSyntax(format string, args ...interface{}) Error {
	return Error{Kind: "ParseSyntax", Message: fmt.Sprintf(format, args...)}
}

// ParseSyntax reports a query-string parse failure. Exported so an external
// parser collaborator (this module's internal/querylang among them) can
// surface a parse failure through the same {Kind, Message} shape the rest
// of the pipeline uses, ahead of any expansion or evaluation.
func ParseSyntax(format string, args ...interface{}) Error {
	return errParseSyntax(format, args...)
}

func errInvalidAttributeValue(name, value string) Error {
	return Error{Kind: "InvalidAttributeValue", Message: fmt.Sprintf("invalid value (%s) for `%s`", value, name)}
}

func errNoSuchAttribute(name string) Error {
	return Error{Kind: "NoSuchAttribute", Message: fmt.Sprintf("invalid attribute %s", name)}
}

// NoSuchField reports that a numeric/geo/tag node referenced a field that
// is absent or of the wrong type.
func NoSuchField(field string) Error {
	return Error{Kind: "NoSuchField", Message: fmt.Sprintf("field %s does not exist or has the wrong type", field)}
}

// ExpansionFailure wraps an error an expander reported.
func ExpansionFailure(message string) Error {
	return Error{Kind: "ExpansionFailure", Message: message}
}

// ErrorSink collects every error surfaced during expansion and evaluation,
// passed by reference through both stages so every collaborator reports
// into the same sink. The query driver stops before evaluation when
// expansion has recorded any error.
type ErrorSink struct {
	errs []Error
}

// Add records e.
func (s *ErrorSink) Add(e Error) { s.errs = append(s.errs, e) }

// Errors returns every error recorded so far.
func (s *ErrorSink) Errors() []Error { return s.errs }

// Empty reports whether no error has been recorded.
func (s *ErrorSink) Empty() bool { return len(s.errs) == 0 }
