package schema

import (
	"strings"

	"github.com/Pagerous/scimpler-sub000/datatype"
)

// Schema is an ordered attribute set plus the schema URNs it recognizes
// (core and extensions). Build once at startup; read-only thereafter.
type Schema struct {
	urns     []string
	attrs    []*Attribute
	index    map[string]*Attribute
	registry *Registry
}

// New builds a schema for the given core URN.
func New(urn string, attrs ...*Attribute) *Schema {
	s := &Schema{
		urns:  []string{strings.ToLower(urn)},
		index: make(map[string]*Attribute),
	}
	s.add(attrs)
	return s
}

// WithExtension registers an extension URN and its attributes. Returns the
// schema for chaining during construction.
func (s *Schema) WithExtension(urn string, attrs ...*Attribute) *Schema {
	s.urns = append(s.urns, strings.ToLower(urn))
	s.add(attrs)
	return s
}

// WithRegistry attaches the resource-type registry used for SCIM reference
// validation.
func (s *Schema) WithRegistry(reg *Registry) *Schema {
	s.registry = reg
	return s
}

func (s *Schema) add(attrs []*Attribute) {
	for _, attr := range attrs {
		s.attrs = append(s.attrs, attr)
		s.index[attr.Name.Attr] = attr
	}
}

// URNs returns the recognized schema URNs, core first.
func (s *Schema) URNs() []string {
	return s.urns
}

// Attrs returns the attributes in registration order.
func (s *Schema) Attrs() []*Attribute {
	return s.attrs
}

// Registry returns the attached resource-type registry, or nil.
func (s *Schema) Registry() *Registry {
	return s.registry
}

// GetAttr resolves a name to its attribute. A qualified name whose schema
// URN is not recognized resolves to nothing; otherwise attr (and subAttr
// through a complex parent) are looked up case-insensitively.
func (s *Schema) GetAttr(name AttributeName) (*Attribute, bool) {
	if name.Schema != "" && !s.recognizes(name.Schema) {
		return nil, false
	}
	attr, ok := s.index[name.Attr]
	if !ok {
		return nil, false
	}
	if name.SubAttr != "" {
		return attr.Sub(name.SubAttr)
	}
	return attr, true
}

func (s *Schema) recognizes(urn string) bool {
	for _, known := range s.urns {
		if known == urn {
			return true
		}
	}
	return false
}

// Complex is a convenience for declaring a complex attribute with its
// sub-attributes in one expression.
func Complex(name string, multiValued bool, subs ...*Attribute) *Attribute {
	return &Attribute{
		Name:          AttrName(name),
		Type:          datatype.Complex,
		MultiValued:   multiValued,
		SubAttributes: subs,
	}
}

// Simple is a convenience for declaring a scalar attribute.
func Simple(name string, t datatype.Type) *Attribute {
	return &Attribute{Name: AttrName(name), Type: t}
}
