package lox

// Callable is anything that can appear on the left of a call expression:
// user-defined Lox functions/methods, native functions, and classes
// (instantiation reads as a call).
type Callable interface {
	Value
	Call(i *Interpreter, args []Value) (Value, error)
	Arity() int
}

// Function is a Lox function or method: its declaration plus the
// environment alive at the point it was declared (its closure). isInit is
// true exactly for a class's `init` method, whose return value is always
// overridden to the bound instance.
type Function struct {
	declaration *FunctionStmt
	closure     *Environment
	isInit      bool
}

func NewFunction(declaration *FunctionStmt, closure *Environment, isInit bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInit: isInit}
}

func (f *Function) Type() ValueType { return CallableType }
func (f *Function) String() string  { return "<fn " + f.declaration.Name.Lexeme + ">" }
func (f *Function) Arity() int      { return len(f.declaration.Params) }

// Call pushes a fresh environment enclosed by the closure, binds parameters
// to arguments, and executes the body as a block. Normal completion yields
// nil (or the bound instance for an initializer); a Return signal yields
// its carried value (or, again, the instance for an initializer).
func (f *Function) Call(i *Interpreter, args []Value) (Value, error) {
	callEnv := NewEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		callEnv.Define(param.Lexeme, args[idx])
	}

	sig, err := i.executeBlock(f.declaration.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if f.isInit {
		return f.closure.GetAt(0, "this"), nil
	}
	if sig != nil {
		return sig.Value, nil
	}
	return Nil{}, nil
}

// bind returns a copy of f whose closure is a fresh environment binding
// `this` to instance, enclosing f's original closure. Used both for method
// lookup (Get on an instance) and superclass method dispatch.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInit)
}

// NativeFn wraps a host function exposed to Lox code, e.g. clock.
type NativeFn struct {
	name  string
	arity int
	fn    func(i *Interpreter, args []Value) (Value, error)
}

func NewNativeFn(name string, arity int, fn func(i *Interpreter, args []Value) (Value, error)) *NativeFn {
	return &NativeFn{name: name, arity: arity, fn: fn}
}

func (n *NativeFn) Type() ValueType { return CallableType }
func (n *NativeFn) String() string  { return "<native fn>" }
func (n *NativeFn) Arity() int      { return n.arity }

func (n *NativeFn) Call(i *Interpreter, args []Value) (Value, error) {
	return n.fn(i, args)
}

// Class is a Lox class: its name, optional superclass, and its own (not
// inherited) methods.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) Type() ValueType { return ClassValueType }
func (c *Class) String() string  { return c.Name }

// FindMethod walks the superclass chain looking for name.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is init's arity if the class defines one, else 0.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, runs `init` (if any) against it, and
// returns the instance.
func (c *Class) Call(i *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a live object of some class: its class reference plus a
// mutable field map. Instances are always held by pointer, so every handle
// to one instance observes the same fields — a plain Go map is enough here
// since field access, unlike environment lookup, is not the interpreter's
// hot path.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]Value)}
}

func (in *Instance) Type() ValueType { return InstanceType }
func (in *Instance) String() string  { return in.class.Name + " instance" }

// Get returns a field if defined, else a method bound to this instance.
func (in *Instance) Get(name Token) (Value, error) {
	if v, ok := in.fields[name.Lexeme]; ok {
		return v, nil
	}
	if method := in.class.FindMethod(name.Lexeme); method != nil {
		return method.bind(in), nil
	}
	return nil, &RuntimeError{Token: name, Message: "Undefined property '" + name.Lexeme + "'."}
}

// Set stores value in the instance's field map, creating the field if it
// did not already exist.
func (in *Instance) Set(name Token, value Value) {
	in.fields[name.Lexeme] = value
}
