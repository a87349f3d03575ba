// Package errors defines the single error shape surfaced by validation:
// a located, rule-attributed GraphQLError. Validation is fail-fast, so
// unlike a typical error package this one has no notion of an
// accumulated multi-error.
package errors

import "fmt"

// Location is a line/column position within a query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Before reports whether a occurs strictly earlier in the document than b.
// The validation rules do not call it; the overlap rule reports the two
// conflicting selections in the order it collected them.
func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

// GraphQLError is the single violation a validation run may surface.
type GraphQLError struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
	Rule      string     `json:"-"`
}

func (err *GraphQLError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", err.Message)
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" (%d:%d)", loc.Line, loc.Column)
	}
	return str
}

var _ error = (*GraphQLError)(nil)

// New builds a GraphQLError with no location. The validation rules pass
// its result to At or AtMulti to attach the offending node's location.
func New(rule, format string, a ...interface{}) *GraphQLError {
	return &GraphQLError{Message: fmt.Sprintf(format, a...), Rule: rule}
}

// At attaches a single location to an otherwise-built error.
func At(err *GraphQLError, loc Location) *GraphQLError {
	err.Locations = []Location{loc}
	return err
}

// AtMulti attaches several locations, used by rules that report a
// conflict spanning more than one node (e.g. the overlap rule).
func AtMulti(err *GraphQLError, locs ...Location) *GraphQLError {
	err.Locations = locs
	return err
}
