package runtime

import (
	"errors"
	"fmt"
)

// InitializerName is the method invoked when a class is called.
const InitializerName = "init"

var ErrUndefinedProperty = errors.New("undefined property")

// ClassValue is a class definition. Classes are first-class and callable.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func NewClass(name string, superclass *ClassValue, methods map[string]*FunctionValue) *ClassValue {
	if methods == nil {
		methods = make(map[string]*FunctionValue)
	}
	return &ClassValue{Name: name, Superclass: superclass, Methods: methods}
}

func (c *ClassValue) Kind() Kind { return KindClass }

// FindMethod searches this class, then each superclass nearest-first.
func (c *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	for class := c; class != nil; class = class.Superclass {
		if method, ok := class.Methods[name]; ok {
			return method, true
		}
	}
	return nil, false
}

// Arity is the initializer's arity, or 0 without one.
func (c *ClassValue) Arity() int {
	if init, ok := c.FindMethod(InitializerName); ok {
		return init.Arity()
	}
	return 0
}

func (c *ClassValue) Bind(*InstanceValue) (Value, error) {
	return nil, fmt.Errorf("class '%s': %w", c.Name, ErrUnsupportedBind)
}

// InstanceValue is one object; Fields is mutated in place and shared by every
// holder of the pointer.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get returns a field if present, otherwise the named method bound to v.
func (v *InstanceValue) Get(name string) (Value, error) {
	if field, ok := v.Fields[name]; ok {
		return field, nil
	}
	if method, ok := v.Class.FindMethod(name); ok {
		return method.Bind(v)
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefinedProperty, name)
}

// Set always writes the field table, shadowing any method of the same name.
func (v *InstanceValue) Set(name string, value Value) {
	v.Fields[name] = value
}
