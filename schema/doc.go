// Package schema implements the SCIM attribute and schema model: parsed
// attribute names, per-attribute contracts (type, multiplicity,
// case-exactness, mutability), schema-wide lookup, and extraction of
// attribute values from resource data.
//
// # Attribute Names
//
// Names follow the grammar shared with the filter parser:
//
//	attr
//	attr.subAttr
//	urn:ietf:params:scim:schemas:core:2.0:User:attr
//	urn:ietf:params:scim:schemas:core:2.0:User:attr.subAttr
//
// Parsing case-normalizes to lowercase; AttributeName values are immutable
// once constructed.
//
// # Schemas
//
// A Schema is an ordered attribute set plus the schema URNs it recognizes
// (core and extensions). Schemas are built once at startup and read-only
// thereafter, so they may be shared across concurrent match calls.
//
// # Extraction
//
// ExtractValue resolves an attribute name against resource data in three
// steps: an extension sub-mapping keyed by the name's URN, then a flat key,
// then a scan of top-level URN-prefixed keys. The same filter expression
// therefore matches both flat and schema-extension-qualified resource
// representations.
package schema
