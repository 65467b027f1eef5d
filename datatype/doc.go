// Package datatype implements the SCIM attribute type system: the closed
// set of primitive types from RFC 7643 §2.3 with each type's validation and
// coercion contract.
//
// Every type validates through the same contract:
//
//	errs := datatype.DateTime.Validate(value)
//
// returning a (possibly empty) list of structured validation errors rather
// than raising.
//
// Numeric comparison is transparent across the Integer/Decimal boundary:
// Numeric() coerces both kinds to float64 so an Integer literal compares
// equal to a Decimal value when their numeric values agree.
//
// dateTime values must satisfy both the XSD dateTime pattern and a real
// calendar parse; the pattern alone admits values like 2023-02-30 that the
// time library rejects.
package datatype
