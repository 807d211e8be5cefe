package interp

import "github.com/cognisivelabs/go-axiom/internal/runtime"

// Environment holds runtime bindings for one execution. Blocks and macro
// bodies push enclosed environments; lookup walks outward. Environments
// are private to a single execution and never shared.
type Environment struct {
	store map[string]runtime.Value
	outer *Environment
}

// NewEnvironment creates a new global environment seeded from context data.
func NewEnvironment(seed map[string]runtime.Value) *Environment {
	store := make(map[string]runtime.Value, len(seed))
	for name, value := range seed {
		store[name] = value
	}
	return &Environment{store: store}
}

// NewEnclosedEnvironment creates an environment enclosed by outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]runtime.Value), outer: outer}
}

// Get looks a name up through the environment chain.
func (e *Environment) Get(name string) (runtime.Value, bool) {
	if value, ok := e.store[name]; ok {
		return value, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Define binds a name in the current environment.
func (e *Environment) Define(name string, value runtime.Value) {
	e.store[name] = value
}

// Assign overwrites an existing binding wherever it lives in the chain.
// It returns false when the name is unbound.
func (e *Environment) Assign(name string, value runtime.Value) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = value
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, value)
	}
	return false
}

// Outer returns the enclosing environment, nil at global scope.
func (e *Environment) Outer() *Environment {
	return e.outer
}
