// Package scimpler implements the SCIM filter language defined by
// RFC 7644 §3.4.2.2: parsing filter expressions into typed operator
// trees and evaluating those trees against schema-typed resource data.
//
// # Architecture
//
// The module is built from four small packages, leaves first:
//
//	┌─────────────────────────────────────┐
//	│            filter                   │  Parser, operator AST,
//	│  (parse, match, serialization)      │  evaluation engine
//	└─────────────────────────────────────┘
//	           ↓ resolves names via
//	┌─────────────────────────────────────┐
//	│            schema                   │  AttributeName, Attribute,
//	│  (name grammar, lookup, extraction) │  Schema, value extraction
//	└─────────────────────────────────────┘
//	           ↓ types values via
//	┌─────────────────────────────────────┐
//	│           datatype                  │  SCIM primitive types,
//	│  (validation, numeric coercion)     │  dateTime, base64, URLs
//	└─────────────────────────────────────┘
//	           ↓ reports through
//	┌─────────────────────────────────────┐
//	│            errors                   │  Structured validation
//	│  (stable codes, context, location)  │  errors
//	└─────────────────────────────────────┘
//
// # Usage
//
// Parse a filter once, evaluate it against many resources:
//
//	op, errs := filter.Parse(`emails[type eq "work" and value co "@example.com"]`)
//	if len(errs) > 0 {
//	    // every error carries a stable numeric code and context
//	}
//
//	result := op.Match(resource, userSchema, true)
//	if result.Matched() {
//	    // resource satisfies the filter
//	}
//
// Parsing never requires a schema; the schema supplies per-attribute
// semantics (type, case sensitivity, multi-valuedness) at match time.
//
// # Design Principles
//
// Pure computation:
//   - No I/O, no background tasks, no global state
//   - Parsed trees and schemas are immutable and safe for concurrent use
//
// Errors over panics:
//   - The parser returns a structured error list, never a partial tree
//   - Evaluation degrades to a non-match instead of failing the predicate
//
// Closed vocabulary:
//   - Exactly the operator set, precedence, and literal syntax SCIM defines
//
// # Scope
//
// HTTP request/response validation, concrete User/Group schemas, and wire
// serialization of resources consume this module's outputs but live outside
// it. Evaluation is an in-memory predicate test, one resource at a time;
// nothing here persists or indexes data.
package scimpler
