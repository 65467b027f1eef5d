package datatype

import (
	"regexp"
	"time"
)

// xsdDateTime is the XSD dateTime shape: date, 'T', time, optional
// fractional seconds, optional 'Z' or numeric offset.
var xsdDateTime = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)

// dateTimeLayouts cover the offset and offset-less variants; the fractional
// part is optional in both.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// ParseDateTime parses an XSD dateTime string into an instant. Both the
// pattern check and the calendar parse must pass: the pattern rejects
// shapes the layouts would tolerate, and the parse rejects impossible
// dates the pattern admits.
func ParseDateTime(s string) (time.Time, bool) {
	if !xsdDateTime.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
