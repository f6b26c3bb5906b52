package commands

// Handlers is the set of commands the shell exposes to the frontend. It is
// empty until the backend grows real capabilities.
var Handlers = []Descriptor{}

// Default builds a registry from Handlers. A conflicting declaration panics.
func Default() *Registry {
	return NewRegistry().MustDeclare(Handlers...)
}
