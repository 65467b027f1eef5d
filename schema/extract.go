package schema

import "strings"

// ExtractValue resolves an attribute name against resource data. Resolution
// tries, in order: an extension sub-mapping keyed by the name's schema URN,
// a flat key, and finally top-level URN-prefixed keys. Sub-attributes
// descend into the resolved mapping, or into each element of a list of
// mappings.
func ExtractValue(data map[string]any, name AttributeName) (any, bool) {
	if data == nil {
		return nil, false
	}

	if name.Schema != "" {
		for key, value := range data {
			if !strings.EqualFold(key, name.Schema) {
				continue
			}
			if sub, ok := value.(map[string]any); ok {
				if v, ok := lookupKey(sub, name.Attr); ok {
					return descend(v, name.SubAttr)
				}
			}
		}
	}

	if v, ok := lookupKey(data, name.Attr); ok {
		return descend(v, name.SubAttr)
	}

	// Fall back to URN-prefixed keys: either a flat "urn:...:attr" key or
	// an extension sub-mapping that contains attr.
	for key, value := range data {
		if !strings.Contains(key, ":") {
			continue
		}
		if tail := key[strings.LastIndex(key, ":")+1:]; strings.EqualFold(tail, name.Attr) {
			return descend(value, name.SubAttr)
		}
		if sub, ok := value.(map[string]any); ok {
			if v, ok := lookupKey(sub, name.Attr); ok {
				return descend(v, name.SubAttr)
			}
		}
	}
	return nil, false
}

// descend resolves a sub-attribute within an extracted value. For a list of
// mappings it collects the sub-values of the elements that carry one.
func descend(value any, subAttr string) (any, bool) {
	if subAttr == "" {
		return value, true
	}
	switch v := value.(type) {
	case map[string]any:
		return lookupKey(v, subAttr)
	case []any:
		var collected []any
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if sub, ok := lookupKey(m, subAttr); ok {
					collected = append(collected, sub)
				}
			}
		}
		if len(collected) == 0 {
			return nil, false
		}
		return collected, true
	}
	return nil, false
}

// lookupKey finds a map entry case-insensitively, preferring an exact match.
func lookupKey(m map[string]any, key string) (any, bool) {
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
