// Package filter implements the SCIM filter grammar of RFC 7644 §3.4.2.2:
// parsing filter expressions into operator trees and matching those trees
// against resource data.
//
// # Grammar
//
// Attribute paths (attr, attr.sub, urn:...:attr), the unary operator pr,
// binary operators eq ne co sw ew gt ge lt le, logical and/or/not, grouping
// with parentheses, complex attribute filters attr[...], double-quoted
// string literals, and numeric/boolean/null literals. Keywords and
// comparison operators are case-insensitive.
//
// # Parsing
//
// Parse returns the operator tree together with a structured error list:
//
//	op, errs := filter.Parse(`userName eq "bjensen"`)
//
// A parse that records any error returns a nil tree — callers never see a
// tree built from malformed input. Each error carries a stable code in the
// 100-112 range; see the errors package for the taxonomy.
//
// The parser runs in two passes. Complex attribute filters and
// parenthesized groups are parsed as self-contained sub-expressions and
// replaced by positional placeholder tokens before the enclosing logical
// structure is split, so quoted literals and nested text are never torn
// apart by keyword scanning. Error messages reconstitute placeholders back
// into the original text.
//
// # Matching
//
// Every operator matches against a resource with a schema supplying
// per-attribute semantics:
//
//	result := op.Match(resource, userSchema, true)
//
// The result is tri-state: ResultMatch, ResultNoMatch, or
// ResultMissingData. The third state distinguishes "the predicate is
// false" from "the data needed to evaluate it was absent", which matters
// because SCIM responses may legitimately omit attributes under
// attributes/excludeAttributes projection. In strict mode absence stays
// indeterminate through the logical combinators; in non-strict mode it is
// not penalized. An attribute unknown to the schema is a structural
// non-match, never missing data.
//
// Matching never panics on malformed data; every such branch degrades to a
// non-match. Trees are immutable and safe for concurrent matching.
package filter
