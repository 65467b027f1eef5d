package filter

import (
	"strings"

	"github.com/Pagerous/scimpler-sub000/datatype"
	"github.com/Pagerous/scimpler-sub000/schema"
)

// MatchResult is the tri-state outcome of evaluating an operator.
type MatchResult int

const (
	// ResultNoMatch means the predicate is false for the resource.
	ResultNoMatch MatchResult = iota
	// ResultMatch means the predicate is true for the resource.
	ResultMatch
	// ResultMissingData means the data needed to evaluate the predicate
	// was absent from the resource.
	ResultMissingData
)

// Matched reports whether the result is a definite match.
func (r MatchResult) Matched() bool {
	return r == ResultMatch
}

func (r MatchResult) String() string {
	switch r {
	case ResultMatch:
		return "match"
	case ResultMissingData:
		return "missingData"
	default:
		return "noMatch"
	}
}

// scope is the attribute resolution context: the schema at the top level,
// or the complex parent attribute inside a complex filter's sub-tree.
type scope struct {
	schema *schema.Schema
	parent *schema.Attribute
}

func (sc scope) resolve(name schema.AttributeName) (*schema.Attribute, bool) {
	if sc.parent != nil {
		if name.HasSubAttr() {
			return nil, false
		}
		return sc.parent.Sub(name.Attr)
	}
	if sc.schema == nil {
		return nil, false
	}
	return sc.schema.GetAttr(name)
}

func (sc scope) extract(value any, name schema.AttributeName) (any, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	return schema.ExtractValue(m, name)
}

// multiValued reports whether the resolved reference is list-shaped: the
// attribute itself, or the complex parent of an addressed sub-attribute.
func (sc scope) multiValued(name schema.AttributeName, attr *schema.Attribute) bool {
	if attr.MultiValued {
		return true
	}
	if name.HasSubAttr() && sc.schema != nil {
		if parent, ok := sc.schema.GetAttr(name.Parent()); ok {
			return parent.MultiValued
		}
	}
	return false
}

// absent maps missing data to the strict-mode result.
func absent(strict bool) MatchResult {
	if strict {
		return ResultMissingData
	}
	return ResultMatch
}

func (o And) Match(data map[string]any, s *schema.Schema, strict bool) MatchResult {
	return o.matchValue(data, scope{schema: s}, strict)
}

func (o And) matchValue(value any, sc scope, strict bool) MatchResult {
	someMissing := false
	for _, sub := range o.Sub {
		switch sub.matchValue(value, sc, strict) {
		case ResultNoMatch:
			return ResultNoMatch
		case ResultMissingData:
			someMissing = true
		}
	}
	if someMissing && strict {
		return ResultMissingData
	}
	return ResultMatch
}

func (o Or) Match(data map[string]any, s *schema.Schema, strict bool) MatchResult {
	return o.matchValue(data, scope{schema: s}, strict)
}

func (o Or) matchValue(value any, sc scope, strict bool) MatchResult {
	someMissing := false
	for _, sub := range o.Sub {
		switch sub.matchValue(value, sc, strict) {
		case ResultMatch:
			return ResultMatch
		case ResultMissingData:
			someMissing = true
		}
	}
	if someMissing && strict {
		return ResultMissingData
	}
	return ResultNoMatch
}

func (o Not) Match(data map[string]any, s *schema.Schema, strict bool) MatchResult {
	return o.matchValue(data, scope{schema: s}, strict)
}

func (o Not) matchValue(value any, sc scope, strict bool) MatchResult {
	switch o.Sub.matchValue(value, sc, strict) {
	case ResultMatch:
		return ResultNoMatch
	case ResultNoMatch:
		return ResultMatch
	default:
		// Absence of contradicting data is not a positive assertion.
		if strict {
			return ResultMissingData
		}
		return ResultMatch
	}
}

func (o Present) Match(data map[string]any, s *schema.Schema, strict bool) MatchResult {
	return o.matchValue(data, scope{schema: s}, strict)
}

func (o Present) matchValue(value any, sc scope, strict bool) MatchResult {
	attr, ok := sc.resolve(o.AttrName)
	if !ok {
		return ResultNoMatch
	}
	v, found := sc.extract(value, o.AttrName)
	if !found {
		return ResultNoMatch
	}

	if attr.MultiValued {
		list, ok := v.([]any)
		if !ok {
			return boolResult(truthy(v))
		}
		if attr.Type == datatype.Complex {
			// A list of mappings is present when any element's value
			// sub-field is truthy.
			for _, item := range list {
				if m, ok := item.(map[string]any); ok {
					if sub, ok := lookupFold(m, "value"); ok && truthy(sub) {
						return ResultMatch
					}
				}
			}
			return ResultNoMatch
		}
		return boolResult(len(list) > 0)
	}
	return boolResult(truthy(v))
}

func (o Comparison) Match(data map[string]any, s *schema.Schema, strict bool) MatchResult {
	return o.matchValue(data, scope{schema: s}, strict)
}

func (o Comparison) matchValue(value any, sc scope, strict bool) MatchResult {
	attr, ok := sc.resolve(o.AttrName)
	if !ok {
		return ResultNoMatch
	}

	// For a complex attribute the comparison target is its value
	// sub-attribute.
	effective := attr
	if attr.Type == datatype.Complex {
		sub, ok := attr.Sub("value")
		if !ok {
			return ResultNoMatch
		}
		effective = sub
	}
	if !o.Op.supports(effective.Type) {
		return ResultNoMatch
	}
	if !literalCompatible(effective.Type, o.Value) {
		return ResultNoMatch
	}

	v, found := sc.extract(value, o.AttrName)
	if !found || v == nil {
		return absent(strict)
	}

	for _, candidate := range candidates(v, attr, sc.multiValued(o.AttrName, attr)) {
		if compare(candidate, o.Value, o.Op, effective.Type, effective.CaseExact) {
			return ResultMatch
		}
	}
	return ResultNoMatch
}

func (o Complex) Match(data map[string]any, s *schema.Schema, strict bool) MatchResult {
	return o.matchValue(data, scope{schema: s}, strict)
}

func (o Complex) matchValue(value any, sc scope, strict bool) MatchResult {
	attr, ok := sc.resolve(o.AttrName)
	if !ok || attr.Type != datatype.Complex {
		return ResultNoMatch
	}
	v, found := sc.extract(value, o.AttrName)
	if !found || v == nil {
		return absent(strict)
	}

	var elements []any
	if attr.MultiValued {
		list, ok := v.([]any)
		if !ok {
			return ResultNoMatch
		}
		elements = list
	} else {
		elements = []any{v}
	}

	inner := scope{parent: attr}
	someMissing := false
	for _, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			continue
		}
		switch o.Sub.matchValue(m, inner, strict) {
		case ResultMatch:
			return ResultMatch
		case ResultMissingData:
			someMissing = true
		}
	}
	if someMissing && strict {
		return ResultMissingData
	}
	return ResultNoMatch
}

// candidates flattens the extracted value into the individual values the
// comparison runs over: each element for multi-valued attributes, and each
// element's value sub-field for complex multi-valued attributes.
func candidates(v any, attr *schema.Attribute, multi bool) []any {
	if !multi {
		if attr.Type == datatype.Complex {
			if m, ok := v.(map[string]any); ok {
				if sub, ok := lookupFold(m, "value"); ok {
					return []any{sub}
				}
			}
			return nil
		}
		return []any{v}
	}

	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}
	if attr.Type != datatype.Complex {
		return list
	}
	var out []any
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			if sub, ok := lookupFold(m, "value"); ok {
				out = append(out, sub)
			}
		}
	}
	return out
}

// compare applies a binary operator to one candidate value, typed by the
// attribute's SCIM type. Any shape mismatch is a non-match.
func compare(candidate, literal any, op CompareOp, t datatype.Type, caseExact bool) bool {
	switch t {
	case datatype.String, datatype.Reference, datatype.ExternalReference,
		datatype.URIReference, datatype.SCIMReference:
		a, ok := candidate.(string)
		if !ok {
			return false
		}
		b, ok := literal.(string)
		if !ok {
			return false
		}
		if !caseExact {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		return compareStrings(a, b, op)

	case datatype.DateTime:
		a, okA := candidate.(string)
		b, okB := literal.(string)
		if !okA || !okB {
			return false
		}
		at, okA := datatype.ParseDateTime(a)
		bt, okB := datatype.ParseDateTime(b)
		if !okA || !okB {
			return false
		}
		switch op {
		case OpEqual:
			return at.Equal(bt)
		case OpNotEqual:
			return !at.Equal(bt)
		case OpGreaterThan:
			return at.After(bt)
		case OpGreaterThanOrEqual:
			return at.After(bt) || at.Equal(bt)
		case OpLesserThan:
			return at.Before(bt)
		case OpLesserThanOrEqual:
			return at.Before(bt) || at.Equal(bt)
		}
		return false

	case datatype.Integer, datatype.Decimal:
		a, okA := datatype.Numeric(candidate)
		b, okB := datatype.Numeric(literal)
		if !okA || !okB {
			return false
		}
		switch op {
		case OpEqual:
			return a == b
		case OpNotEqual:
			return a != b
		case OpGreaterThan:
			return a > b
		case OpGreaterThanOrEqual:
			return a >= b
		case OpLesserThan:
			return a < b
		case OpLesserThanOrEqual:
			return a <= b
		}
		return false

	case datatype.Boolean:
		a, okA := candidate.(bool)
		b, okB := literal.(bool)
		if !okA || !okB {
			return false
		}
		switch op {
		case OpEqual:
			return a == b
		case OpNotEqual:
			return a != b
		}
		return false

	case datatype.Binary:
		a, okA := candidate.(string)
		b, okB := literal.(string)
		if !okA || !okB {
			return false
		}
		switch op {
		case OpEqual:
			return a == b
		case OpNotEqual:
			return a != b
		}
		return false
	}
	return false
}

func compareStrings(a, b string, op CompareOp) bool {
	switch op {
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	case OpContains:
		return strings.Contains(a, b)
	case OpStartsWith:
		return strings.HasPrefix(a, b)
	case OpEndsWith:
		return strings.HasSuffix(a, b)
	case OpGreaterThan:
		return a > b
	case OpGreaterThanOrEqual:
		return a >= b
	case OpLesserThan:
		return a < b
	case OpLesserThanOrEqual:
		return a <= b
	}
	return false
}

// literalCompatible reports whether the literal's native type can compare
// against the attribute's SCIM type at all.
func literalCompatible(t datatype.Type, literal any) bool {
	if literal == nil {
		return false
	}
	switch t {
	case datatype.Boolean:
		_, ok := literal.(bool)
		return ok
	case datatype.Integer, datatype.Decimal:
		_, ok := datatype.Numeric(literal)
		return ok
	case datatype.DateTime:
		s, ok := literal.(string)
		if !ok {
			return false
		}
		_, ok = datatype.ParseDateTime(s)
		return ok
	default:
		_, ok := literal.(string)
		return ok
	}
}

func boolResult(b bool) MatchResult {
	if b {
		return ResultMatch
	}
	return ResultNoMatch
}

// truthy implements presence for scalar values: non-nil, and non-empty for
// strings and sequences.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// lookupFold finds a map entry case-insensitively, preferring exact.
func lookupFold(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}
