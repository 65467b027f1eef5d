package errors

import (
	"fmt"
	"reflect"
	"strings"
)

// Stable error codes. Codes 100-112 are reserved for filter parsing;
// codes below 100 cover value validation.
const (
	CodeBadType           = 1
	CodeBadValueSyntax    = 2
	CodeBadURL            = 3
	CodeBadCanonicalValue = 4
	CodeBadReferenceType  = 5

	CodeNoClosingBracket        = 100
	CodeNoOpeningBracket        = 101
	CodeNoClosingComplexBracket = 102
	CodeNoOpeningComplexBracket = 103
	CodeMissingOperand          = 104
	CodeUnknownOperator         = 105
	CodeUnknownExpression       = 106
	CodeEmptyExpression         = 107
	CodeEmptyComplexAttrName    = 108
	CodeNestedComplexFilter     = 109
	CodeEmptyComplexFilterBody  = 110
	CodeBadAttributeName        = 111
	CodeBadLiteral              = 112
)

// messages maps each code to its human-readable template. Named context
// values are substituted for their {key} markers when rendering.
var messages = map[int]string{
	CodeBadType:           "expected type '{expected}'",
	CodeBadValueSyntax:    "bad value syntax for type '{type}'",
	CodeBadURL:            "bad URL {value}",
	CodeBadCanonicalValue: "value {value} is not one of the canonical values",
	CodeBadReferenceType:  "reference {value} does not target a known resource type",

	CodeNoClosingBracket:        "no closing bracket for the opening bracket at position {bracket_position}",
	CodeNoOpeningBracket:        "no opening bracket for the closing bracket at position {bracket_position}",
	CodeNoClosingComplexBracket: "no closing complex attribute bracket for the opening bracket at position {bracket_position}",
	CodeNoOpeningComplexBracket: "no opening complex attribute bracket for the closing bracket at position {bracket_position}",
	CodeMissingOperand:          "missing operand for operator '{operator}' in expression '{expression}'",
	CodeUnknownOperator:         "unknown {operator_type} operator '{operator}' in expression '{expression}'",
	CodeUnknownExpression:       "unknown expression '{expression}'",
	CodeEmptyExpression:         "empty expression",
	CodeEmptyComplexAttrName:    "complex attribute filter '{expression}' is missing its attribute name",
	CodeNestedComplexFilter:     "complex attribute filters cannot be nested in '{expression}'",
	CodeEmptyComplexFilterBody:  "complex attribute filter '{expression}' has an empty body",
	CodeBadAttributeName:        "bad attribute name '{attribute}'",
	CodeBadLiteral:              "bad comparison value {value}",
}

// ValidationError is the structured error returned by parsing and
// validation. Code is stable; Context carries named substitution values;
// Location is an optional dotted/indexed path into a larger payload.
type ValidationError struct {
	Code     int
	Context  map[string]any
	Location string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("error %d at '%s': %s", e.Code, e.Location, e.Message())
	}
	return fmt.Sprintf("error %d: %s", e.Code, e.Message())
}

// Message renders the code's message template with the context values
// substituted for their {key} markers.
func (e ValidationError) Message() string {
	msg, ok := messages[e.Code]
	if !ok {
		return fmt.Sprintf("validation error %d", e.Code)
	}
	for key, value := range e.Context {
		msg = strings.ReplaceAll(msg, "{"+key+"}", fmt.Sprintf("%v", value))
	}
	return msg
}

// WithLocation returns a copy of the error carrying the given location path.
func (e ValidationError) WithLocation(location string) ValidationError {
	e.Location = location
	return e
}

// Equal reports whether two errors have the same code, context and location.
func (e ValidationError) Equal(other ValidationError) bool {
	return e.Code == other.Code &&
		e.Location == other.Location &&
		reflect.DeepEqual(e.Context, other.Context)
}

func newError(code int, context map[string]any) ValidationError {
	return ValidationError{Code: code, Context: context}
}

// BadType reports a value whose native type does not match the attribute's
// SCIM type.
func BadType(expected string) ValidationError {
	return newError(CodeBadType, map[string]any{"expected": expected})
}

// BadValueSyntax reports a value of the right native type that fails the
// type's syntax rules (dateTime pattern, base64 round-trip).
func BadValueSyntax(scimType string) ValidationError {
	return newError(CodeBadValueSyntax, map[string]any{"type": scimType})
}

// BadURL reports an external reference that is not an absolute URL.
func BadURL(value any) ValidationError {
	return newError(CodeBadURL, map[string]any{"value": value})
}

// BadCanonicalValue reports a value outside the attribute's canonical set.
func BadCanonicalValue(value any) ValidationError {
	return newError(CodeBadCanonicalValue, map[string]any{"value": value})
}

// BadReferenceType reports a SCIM reference naming an unregistered
// resource type.
func BadReferenceType(value any) ValidationError {
	return newError(CodeBadReferenceType, map[string]any{"value": value})
}

// NoClosingBracket reports a grouping '(' that is never closed.
func NoClosingBracket(position int) ValidationError {
	return newError(CodeNoClosingBracket, map[string]any{"bracket_position": position})
}

// NoOpeningBracket reports a grouping ')' with no matching '('.
func NoOpeningBracket(position int) ValidationError {
	return newError(CodeNoOpeningBracket, map[string]any{"bracket_position": position})
}

// NoClosingComplexBracket reports a complex attribute '[' that is never
// closed.
func NoClosingComplexBracket(position int) ValidationError {
	return newError(CodeNoClosingComplexBracket, map[string]any{"bracket_position": position})
}

// NoOpeningComplexBracket reports a complex attribute ']' with no matching
// '['.
func NoOpeningComplexBracket(position int) ValidationError {
	return newError(CodeNoOpeningComplexBracket, map[string]any{"bracket_position": position})
}

// MissingOperand reports a logical operator with an empty operand on either
// side. The expression is reported with placeholders reconstituted.
func MissingOperand(operator, expression string) ValidationError {
	return newError(CodeMissingOperand, map[string]any{
		"operator":   operator,
		"expression": expression,
	})
}

// UnknownOperator reports an unrecognized unary or binary operator keyword.
func UnknownOperator(operatorType, operator, expression string) ValidationError {
	return newError(CodeUnknownOperator, map[string]any{
		"operator_type": operatorType,
		"operator":      operator,
		"expression":    expression,
	})
}

// UnknownExpression reports a leaf expression with an unexpected shape.
func UnknownExpression(expression string) ValidationError {
	return newError(CodeUnknownExpression, map[string]any{"expression": expression})
}

// EmptyExpression reports an empty filter or an empty grouping.
func EmptyExpression() ValidationError {
	return newError(CodeEmptyExpression, nil)
}

// EmptyComplexAttrName reports a complex attribute filter without a
// top-level attribute name.
func EmptyComplexAttrName(expression string) ValidationError {
	return newError(CodeEmptyComplexAttrName, map[string]any{"expression": expression})
}

// NestedComplexFilter reports square-bracket use inside a complex attribute
// filter.
func NestedComplexFilter(expression string) ValidationError {
	return newError(CodeNestedComplexFilter, map[string]any{"expression": expression})
}

// EmptyComplexFilterBody reports a complex attribute filter whose bracketed
// body is blank.
func EmptyComplexFilterBody(expression string) ValidationError {
	return newError(CodeEmptyComplexFilterBody, map[string]any{"expression": expression})
}

// BadAttributeName reports text that does not match the attribute name
// grammar.
func BadAttributeName(attribute string) ValidationError {
	return newError(CodeBadAttributeName, map[string]any{"attribute": attribute})
}

// BadLiteral reports a comparison value that is not a valid string, number,
// boolean or null literal.
func BadLiteral(value string) ValidationError {
	return newError(CodeBadLiteral, map[string]any{"value": value})
}
