package schema

import "strings"

// Registry is the explicit set of resource types known to a deployment,
// consulted when validating SCIM references. It replaces any process-wide
// registry: construct one, register the resource types, and pass it where
// reference validation happens.
type Registry struct {
	endpoints map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{endpoints: make(map[string]string)}
}

// Register adds a resource type and its endpoint, e.g. ("User", "/Users").
// Returns the registry for chaining during startup construction.
func (r *Registry) Register(resourceType, endpoint string) *Registry {
	r.endpoints[strings.ToLower(resourceType)] = strings.ToLower(endpoint)
	return r
}

// Has reports whether the resource type is registered.
func (r *Registry) Has(resourceType string) bool {
	_, ok := r.endpoints[strings.ToLower(resourceType)]
	return ok
}

// Permits reports whether ref targets one of the allowed resource types.
// An empty allowed list permits any registered type.
func (r *Registry) Permits(ref string, allowed []string) bool {
	ref = strings.ToLower(ref)
	if len(allowed) == 0 {
		for _, endpoint := range r.endpoints {
			if strings.Contains(ref, endpoint) {
				return true
			}
		}
		return false
	}
	for _, name := range allowed {
		endpoint, ok := r.endpoints[strings.ToLower(name)]
		if ok && strings.Contains(ref, endpoint) {
			return true
		}
	}
	return false
}
