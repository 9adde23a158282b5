package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefinedVariable is wrapped by Get and Assign when no scope in the chain
// holds the name.
var ErrUndefinedVariable = errors.New("undefined variable")

// Environment is one lexical scope. Scopes are shared by pointer: a closure
// keeps its defining scope alive after the block that created it exits.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or overwrites a binding in this scope only.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}

// Ancestor walks exactly distance parent links.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env.parent == nil {
			panic(&InvariantError{Message: fmt.Sprintf("scope chain shorter than resolved distance %d", distance)})
		}
		env = env.parent
	}
	return env
}

// GetAt reads name from the scope exactly distance hops out. The resolver
// guarantees the binding exists there, so a miss panics with *InvariantError.
func (e *Environment) GetAt(distance int, name string) Value {
	scope := e.Ancestor(distance)
	v, ok := scope.values[name]
	if !ok {
		panic(&InvariantError{Message: fmt.Sprintf("'%s' not found at resolved distance %d", name, distance)})
	}
	return v
}

// AssignAt writes name in the scope exactly distance hops out.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	scope := e.Ancestor(distance)
	if _, ok := scope.values[name]; !ok {
		panic(&InvariantError{Message: fmt.Sprintf("'%s' not found at resolved distance %d", name, distance)})
	}
	scope.values[name] = value
}

// HasInCurrentScope reports whether the binding exists in this scope.
func (e *Environment) HasInCurrentScope(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InvariantError signals disagreement between the resolver's distances and
// the live scope chain. It is a bug, never a user error.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "internal: " + e.Message
}
