package lox

import (
	"github.com/dolthub/swiss"
)

// envInitialCapacity sizes the swiss map for a typical block or call frame;
// swiss.Map grows past this without complaint, it's just a starting guess.
const envInitialCapacity = 8

// Environment is one link in the scope chain: a name-to-value map plus an
// optional enclosing frame. The chain's last link is the globals frame.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, Value]
}

// NewEnvironment creates a frame enclosed by parent. Pass nil to create the
// global frame.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		enclosing: parent,
		values:    swiss.NewMap[string, Value](envInitialCapacity),
	}
}

// Define binds (or rebinds) name in this frame only.
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get looks up name starting in this frame and walking the enclosing chain.
func (e *Environment) Get(name Token) (Value, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &RuntimeError{Token: name, Message: "Undefined variable '" + name.Lexeme + "'."}
}

// Assign writes to the first frame (starting here) that already defines
// name.
func (e *Environment) Assign(name Token, value Value) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, value)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return &RuntimeError{Token: name, Message: "Undefined variable '" + name.Lexeme + "'."}
}

// ancestor walks exactly distance enclosing links up the chain. The
// resolver guarantees the chain is at least that long wherever this is
// called, so there is no fallback on a missing link.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the frame exactly distance links up. No fallback:
// the resolver guarantees presence.
func (e *Environment) GetAt(distance int, name string) Value {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// AssignAt writes name in the frame exactly distance links up.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).values.Put(name, value)
}
