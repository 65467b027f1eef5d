// Package errors provides the structured validation errors shared by the
// filter parser, the attribute type system, and the schema model.
//
// # Overview
//
// Nothing in this module raises: parsing and validation return values of
// ValidationError, each carrying a stable numeric code, a context map of
// named substitution values, and an optional dotted/indexed location path
// for embedding in larger validation-issue trees.
//
// Codes 100–112 are reserved for filter parsing (see the filter package for
// the taxonomy); codes 1–99 cover value validation performed by the datatype
// and schema packages.
//
// # Quick Start
//
// Construct errors through the named constructors, one per code:
//
//	if _, ok := schema.ParseAttrName(attr); !ok {
//	    return errors.BadAttributeName(attr)
//	}
//
// Attach a location when the error is nested inside a larger payload:
//
//	err = err.WithLocation("emails.1.value")
//
// Render for humans with Error(); compare structurally with Equal():
//
//	err.Error() // error 111: bad attribute name 'user name'
//
// # Stability
//
// Codes are part of the public contract: callers map them to protocol-level
// invalidFilter/invalidPath responses. Message templates may be reworded;
// codes and context keys may not change meaning.
//
// # Thread Safety
//
// ValidationError is a value type; WithLocation returns a copy. Instances
// are safe to share across goroutines.
package errors
