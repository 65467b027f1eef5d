package datatype

import (
	"encoding/base64"
	"net/url"

	"github.com/Pagerous/scimpler-sub000/errors"
)

// Type identifies a SCIM attribute type.
type Type int

const (
	// Unknown represents an unrecognized attribute type.
	Unknown Type = iota
	// Boolean accepts exactly Go bool values.
	Boolean
	// Integer accepts integer kinds, or floats with a zero fractional part.
	Integer
	// Decimal accepts floats and integer kinds.
	Decimal
	// String accepts string values.
	String
	// Binary accepts standard-alphabet base64 strings that round-trip
	// byte-for-byte.
	Binary
	// Reference accepts string values naming any resource.
	Reference
	// ExternalReference accepts absolute URLs (scheme and host present).
	ExternalReference
	// URIReference accepts string URI values.
	URIReference
	// SCIMReference accepts string references to SCIM resources.
	SCIMReference
	// DateTime accepts XSD dateTime strings parseable as real instants.
	DateTime
	// Complex accepts a flat mapping of named scalar sub-values.
	Complex
)

// String returns the SCIM name of the type.
func (t Type) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case String:
		return "string"
	case Binary:
		return "binary"
	case Reference, ExternalReference, URIReference, SCIMReference:
		return "reference"
	case DateTime:
		return "dateTime"
	case Complex:
		return "complex"
	default:
		return "unknown"
	}
}

// Validate checks a value against the type's contract and returns the
// violations found. A nil value is accepted by every type; required-ness is
// the schema layer's concern.
func (t Type) Validate(value any) []errors.ValidationError {
	if value == nil {
		return nil
	}

	switch t {
	case Boolean:
		if _, ok := value.(bool); !ok {
			return []errors.ValidationError{errors.BadType(t.String())}
		}

	case Integer:
		if !isIntegral(value) {
			return []errors.ValidationError{errors.BadType(t.String())}
		}

	case Decimal:
		if _, ok := Numeric(value); !ok {
			return []errors.ValidationError{errors.BadType(t.String())}
		}

	case String, Reference, URIReference, SCIMReference:
		if _, ok := value.(string); !ok {
			return []errors.ValidationError{errors.BadType(t.String())}
		}

	case ExternalReference:
		s, ok := value.(string)
		if !ok {
			return []errors.ValidationError{errors.BadType(t.String())}
		}
		if !isAbsoluteURL(s) {
			return []errors.ValidationError{errors.BadURL(s)}
		}

	case Binary:
		s, ok := value.(string)
		if !ok {
			return []errors.ValidationError{errors.BadType(t.String())}
		}
		if !isBase64(s) {
			return []errors.ValidationError{errors.BadValueSyntax(t.String())}
		}

	case DateTime:
		s, ok := value.(string)
		if !ok {
			return []errors.ValidationError{errors.BadType(t.String())}
		}
		if _, ok := ParseDateTime(s); !ok {
			return []errors.ValidationError{errors.BadValueSyntax(t.String())}
		}

	case Complex:
		m, ok := value.(map[string]any)
		if !ok {
			return []errors.ValidationError{errors.BadType(t.String())}
		}
		var errs []errors.ValidationError
		for key, sub := range m {
			if !isScalar(sub) {
				errs = append(errs, errors.BadType("scalar").WithLocation(key))
			}
		}
		return errs

	default:
		return []errors.ValidationError{errors.BadType("unknown")}
	}

	return nil
}

// isAbsoluteURL reports whether s parses as a URL with both scheme and host.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// isBase64 reports whether s is standard-alphabet base64 whose re-encode
// reproduces the input byte-for-byte.
func isBase64(s string) bool {
	decoded, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return false
	}
	return base64.StdEncoding.EncodeToString(decoded) == s
}

// isScalar reports whether the value's native type is one of the leaf
// types a complex sub-value may hold.
func isScalar(value any) bool {
	switch value.(type) {
	case nil, bool, string:
		return true
	}
	_, ok := Numeric(value)
	return ok
}
