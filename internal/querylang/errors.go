package querylang

import "fmt"

// SyntaxError is the {Kind, Message} shape this package's own validation
// failures take; the only one produced is InvalidBound, for a numeric bound
// that does not parse. Parse failures from the underlying participle
// grammar are instead surfaced as ast.Error via ast.ParseSyntax, and
// attribute failures keep their own ast.Error kinds.
type SyntaxError struct {
	Kind    string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error (%s): %s", e.Kind, e.Message)
}

func errInvalidBound(value string) SyntaxError {
	return SyntaxError{Kind: "InvalidBound", Message: fmt.Sprintf("invalid numeric bound %q", value)}
}
