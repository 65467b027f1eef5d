package schema

import (
	"regexp"
	"strings"
)

var (
	// nameTail matches the attr(.subAttr) remainder after any URN prefix.
	nameTail = regexp.MustCompile(`^\w+(\.\w+)?$`)
	// urnPrefix matches a colon-terminated URN prefix, without the colon.
	urnPrefix = regexp.MustCompile(`^[\w.:-]+$`)
)

// AttributeName is a parsed attribute reference: an optional schema URN, an
// attribute name, and an optional sub-attribute. All parts are lowercase.
// Immutable once constructed.
type AttributeName struct {
	Schema  string
	Attr    string
	SubAttr string
}

// ParseAttrName parses text of the shape (urn:)?attr(.subAttr)? into an
// AttributeName, case-normalizing to lowercase. The second return value is
// false when the text does not match the attribute name grammar.
func ParseAttrName(text string) (AttributeName, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return AttributeName{}, false
	}

	var urn string
	rest := text
	if i := strings.LastIndex(text, ":"); i >= 0 {
		urn, rest = text[:i], text[i+1:]
		if urn == "" || !urnPrefix.MatchString(urn) {
			return AttributeName{}, false
		}
	}
	if !nameTail.MatchString(rest) {
		return AttributeName{}, false
	}

	name := AttributeName{Schema: urn, Attr: rest}
	if i := strings.Index(rest, "."); i >= 0 {
		name.Attr, name.SubAttr = rest[:i], rest[i+1:]
	}
	return name, true
}

// AttrName builds a name from a bare attribute identifier, lowercasing it.
// Intended for schema definitions where the identifier is known to be valid.
func AttrName(attr string) AttributeName {
	return AttributeName{Attr: strings.ToLower(attr)}
}

// Equal reports whether two names reference the same attribute: attr and
// subAttr must match, and the schemas must be both empty or both equal.
func (n AttributeName) Equal(other AttributeName) bool {
	if n.Attr != other.Attr || n.SubAttr != other.SubAttr {
		return false
	}
	if n.Schema == "" && other.Schema == "" {
		return true
	}
	return n.Schema == other.Schema
}

// HasSubAttr reports whether the name addresses a sub-attribute.
func (n AttributeName) HasSubAttr() bool {
	return n.SubAttr != ""
}

// Parent returns the name without its sub-attribute part.
func (n AttributeName) Parent() AttributeName {
	return AttributeName{Schema: n.Schema, Attr: n.Attr}
}

// String re-joins the parts into the textual form.
func (n AttributeName) String() string {
	var b strings.Builder
	if n.Schema != "" {
		b.WriteString(n.Schema)
		b.WriteString(":")
	}
	b.WriteString(n.Attr)
	if n.SubAttr != "" {
		b.WriteString(".")
		b.WriteString(n.SubAttr)
	}
	return b.String()
}
