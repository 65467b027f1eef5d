package schema

import (
	"fmt"
	"strings"

	"github.com/Pagerous/scimpler-sub000/datatype"
	"github.com/Pagerous/scimpler-sub000/errors"
)

// Mutability describes whether and how a value may change.
type Mutability int

const (
	// ReadWrite values may be read and written.
	ReadWrite Mutability = iota
	// ReadOnly values are set by the service provider only.
	ReadOnly
	// Immutable values may be set once and never changed.
	Immutable
	// WriteOnly values may be written but are never returned.
	WriteOnly
)

func (m Mutability) String() string {
	switch m {
	case ReadOnly:
		return "readOnly"
	case Immutable:
		return "immutable"
	case WriteOnly:
		return "writeOnly"
	default:
		return "readWrite"
	}
}

// Returned describes when a value appears in responses.
type Returned int

const (
	// ReturnedDefault values are returned unless excluded by projection.
	ReturnedDefault Returned = iota
	// ReturnedAlways values are always returned.
	ReturnedAlways
	// ReturnedNever values are never returned.
	ReturnedNever
	// ReturnedRequest values are returned only when requested.
	ReturnedRequest
)

func (r Returned) String() string {
	switch r {
	case ReturnedAlways:
		return "always"
	case ReturnedNever:
		return "never"
	case ReturnedRequest:
		return "request"
	default:
		return "default"
	}
}

// Uniqueness describes the uniqueness constraint on a value.
type Uniqueness int

const (
	// UniquenessNone imposes no constraint.
	UniquenessNone Uniqueness = iota
	// UniquenessServer requires uniqueness within the service provider.
	UniquenessServer
	// UniquenessGlobal requires global uniqueness.
	UniquenessGlobal
)

func (u Uniqueness) String() string {
	switch u {
	case UniquenessServer:
		return "server"
	case UniquenessGlobal:
		return "global"
	default:
		return "none"
	}
}

// Validator is a custom per-attribute validation hook.
type Validator func(value any) []errors.ValidationError

// Attribute describes one field's contract: its SCIM type, multiplicity,
// case-exactness, and metadata. A complex attribute carries one level of
// named sub-attributes; complex-in-complex nesting is not representable.
type Attribute struct {
	Name            AttributeName
	Type            datatype.Type
	SubAttributes   []*Attribute
	Required        bool
	MultiValued     bool
	CaseExact       bool
	CanonicalValues []any
	Mutability      Mutability
	Returned        Returned
	Uniqueness      Uniqueness
	ReferenceTypes  []string
	Validators      []Validator
}

// Sub resolves a sub-attribute of a complex attribute case-insensitively.
func (a *Attribute) Sub(name string) (*Attribute, bool) {
	if a.Type != datatype.Complex {
		return nil, false
	}
	name = strings.ToLower(name)
	for _, sub := range a.SubAttributes {
		if sub.Name.Attr == name {
			return sub, true
		}
	}
	return nil, false
}

// Validate checks a value against the attribute's contract: native type,
// multi-valuedness, canonical values, reference targets and custom
// validators. The registry supplies known resource types for SCIM
// references; it may be nil, which skips the reference-type check.
func (a *Attribute) Validate(value any, reg *Registry) []errors.ValidationError {
	if value == nil {
		return nil
	}

	if a.MultiValued {
		list, ok := value.([]any)
		if !ok {
			return []errors.ValidationError{errors.BadType("list")}
		}
		var errs []errors.ValidationError
		for i, item := range list {
			for _, err := range a.validateSingle(item, reg) {
				errs = append(errs, locate(err, fmt.Sprintf("%d", i)))
			}
		}
		return errs
	}
	return a.validateSingle(value, reg)
}

func (a *Attribute) validateSingle(value any, reg *Registry) []errors.ValidationError {
	errs := a.Type.Validate(value)

	if len(errs) == 0 && a.Type == datatype.Complex {
		if m, ok := value.(map[string]any); ok {
			for _, sub := range a.SubAttributes {
				subValue, found := lookupKey(m, sub.Name.Attr)
				if !found {
					continue
				}
				for _, err := range sub.Validate(subValue, reg) {
					errs = append(errs, locate(err, sub.Name.Attr))
				}
			}
		}
	}

	if len(errs) == 0 && len(a.CanonicalValues) > 0 {
		if !a.isCanonical(value) {
			errs = append(errs, errors.BadCanonicalValue(value))
		}
	}

	if len(errs) == 0 && a.Type == datatype.SCIMReference && reg != nil {
		if ref, ok := value.(string); ok && !reg.Permits(ref, a.ReferenceTypes) {
			errs = append(errs, errors.BadReferenceType(ref))
		}
	}

	for _, validate := range a.Validators {
		errs = append(errs, validate(value)...)
	}
	return errs
}

func (a *Attribute) isCanonical(value any) bool {
	for _, canonical := range a.CanonicalValues {
		if canonical == value {
			return true
		}
		// Non-case-exact string attributes compare canonicals folded.
		cs, okC := canonical.(string)
		vs, okV := value.(string)
		if okC && okV && !a.CaseExact && strings.EqualFold(cs, vs) {
			return true
		}
	}
	return false
}

// locate prepends a path segment to an error's location.
func locate(err errors.ValidationError, segment string) errors.ValidationError {
	if err.Location == "" {
		return err.WithLocation(segment)
	}
	return err.WithLocation(segment + "." + err.Location)
}
