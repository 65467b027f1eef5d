package filter

import (
	"github.com/Pagerous/scimpler-sub000/datatype"
	"github.com/Pagerous/scimpler-sub000/schema"
)

// CompareOp is a binary comparison operator keyword.
type CompareOp string

// The binary comparison operators.
const (
	OpEqual              CompareOp = "eq"
	OpNotEqual           CompareOp = "ne"
	OpContains           CompareOp = "co"
	OpStartsWith         CompareOp = "sw"
	OpEndsWith           CompareOp = "ew"
	OpGreaterThan        CompareOp = "gt"
	OpGreaterThanOrEqual CompareOp = "ge"
	OpLesserThan         CompareOp = "lt"
	OpLesserThanOrEqual  CompareOp = "le"
)

// binaryOps is the operator table consulted by the parser, keyed by the
// lowercase keyword.
var binaryOps = map[string]CompareOp{
	"eq": OpEqual,
	"ne": OpNotEqual,
	"co": OpContains,
	"sw": OpStartsWith,
	"ew": OpEndsWith,
	"gt": OpGreaterThan,
	"ge": OpGreaterThanOrEqual,
	"lt": OpLesserThan,
	"le": OpLesserThanOrEqual,
}

// supportedTypes lists, per operator, the SCIM types the comparison is
// defined over. A literal applied to any other type is a non-match.
var supportedTypes = map[CompareOp][]datatype.Type{
	OpEqual: {
		datatype.Boolean, datatype.Integer, datatype.Decimal, datatype.String,
		datatype.Binary, datatype.Reference, datatype.ExternalReference,
		datatype.URIReference, datatype.SCIMReference, datatype.DateTime,
	},
	OpNotEqual: {
		datatype.Boolean, datatype.Integer, datatype.Decimal, datatype.String,
		datatype.Binary, datatype.Reference, datatype.ExternalReference,
		datatype.URIReference, datatype.SCIMReference, datatype.DateTime,
	},
	OpContains: {
		datatype.String, datatype.Reference, datatype.ExternalReference,
		datatype.URIReference, datatype.SCIMReference,
	},
	OpStartsWith: {
		datatype.String, datatype.Reference, datatype.ExternalReference,
		datatype.URIReference, datatype.SCIMReference,
	},
	OpEndsWith: {
		datatype.String, datatype.Reference, datatype.ExternalReference,
		datatype.URIReference, datatype.SCIMReference,
	},
	OpGreaterThan:        {datatype.String, datatype.DateTime, datatype.Integer, datatype.Decimal},
	OpGreaterThanOrEqual: {datatype.String, datatype.DateTime, datatype.Integer, datatype.Decimal},
	OpLesserThan:         {datatype.String, datatype.DateTime, datatype.Integer, datatype.Decimal},
	OpLesserThanOrEqual:  {datatype.String, datatype.DateTime, datatype.Integer, datatype.Decimal},
}

func (op CompareOp) supports(t datatype.Type) bool {
	for _, supported := range supportedTypes[op] {
		if supported == t {
			return true
		}
	}
	return false
}

// Operator is one node of a parsed filter. The set of implementations is
// closed: And, Or, Not, Present, Comparison and Complex.
type Operator interface {
	// Match evaluates the operator against a resource. In strict mode an
	// attribute absent from the data is indeterminate (ResultMissingData)
	// rather than a definite non-match.
	Match(data map[string]any, s *schema.Schema, strict bool) MatchResult
	// ToMap returns the structural dump of the node, for tests and for
	// embedding in protocol payloads such as PATCH path filters.
	ToMap() map[string]any

	matchValue(value any, sc scope, strict bool) MatchResult
}

// And matches when every child matches.
type And struct {
	Sub []Operator
}

// Or matches when any child matches.
type Or struct {
	Sub []Operator
}

// Not inverts its child.
type Not struct {
	Sub Operator
}

// Present is the unary pr operator: the attribute has a non-empty value.
type Present struct {
	AttrName schema.AttributeName
}

// Comparison applies a binary operator to an attribute and a literal.
type Comparison struct {
	AttrName schema.AttributeName
	Op       CompareOp
	Value    any
}

// Complex wraps a sub-tree evaluated against a complex attribute's fields.
// The sub-tree never contains another Complex; the parser rejects nesting.
type Complex struct {
	AttrName schema.AttributeName
	Sub      Operator
}

func (o And) ToMap() map[string]any {
	return map[string]any{"op": "and", "sub_ops": subMaps(o.Sub)}
}

func (o Or) ToMap() map[string]any {
	return map[string]any{"op": "or", "sub_ops": subMaps(o.Sub)}
}

func (o Not) ToMap() map[string]any {
	return map[string]any{"op": "not", "sub_op": o.Sub.ToMap()}
}

func (o Present) ToMap() map[string]any {
	return map[string]any{"op": "pr", "attr_name": o.AttrName.String()}
}

func (o Comparison) ToMap() map[string]any {
	return map[string]any{
		"op":        string(o.Op),
		"attr_name": o.AttrName.String(),
		"value":     o.Value,
	}
}

func (o Complex) ToMap() map[string]any {
	return map[string]any{
		"op":        "complex",
		"attr_name": o.AttrName.String(),
		"sub_op":    o.Sub.ToMap(),
	}
}

func subMaps(ops []Operator) []map[string]any {
	maps := make([]map[string]any, len(ops))
	for i, op := range ops {
		maps[i] = op.ToMap()
	}
	return maps
}
