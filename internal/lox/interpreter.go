package lox

import (
	"fmt"
	"io"
	"time"
)

// Interpreter walks a resolved program and evaluates it directly, with no
// intermediate bytecode. It owns the global environment, the live call
// frame, and the resolver's scope-distance side-table (keyed by expression
// id, not pointer identity, so two structurally identical REPL lines never
// collide).
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[int]int
	stdout      io.Writer
}

// NewInterpreter creates an Interpreter that prints PrintStmt output to out,
// with the standard library of native functions already installed.
func NewInterpreter(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	i := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[int]int),
		stdout:      out,
	}
	i.defineNatives()
	return i
}

func (i *Interpreter) defineNatives() {
	i.globals.Define("clock", NewNativeFn("clock", 0, func(i *Interpreter, args []Value) (Value, error) {
		return Number(float64(time.Now().UnixNano()) / 1e9), nil
	}))
}

// resolve is called by the Resolver to record that the expression with the
// given id resolves to a local variable `depth` scopes up from wherever it
// is evaluated.
func (i *Interpreter) resolve(exprID, depth int) {
	i.locals[exprID] = depth
}

// Interpret executes a fully resolved program. A RuntimeError aborts the
// remaining statements and is returned to the caller; any other error is a
// bug in this interpreter, not in the Lox program, and is also returned
// unchanged.
func (i *Interpreter) Interpret(stmts []Stmt) error {
	for _, stmt := range stmts {
		if _, err := stmt.exec(i); err != nil {
			return err
		}
	}
	return nil
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// environment on every exit path (normal, return, or error).
func (i *Interpreter) executeBlock(stmts []Stmt, env *Environment) (*returnSignal, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		sig, err := stmt.exec(i)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

func (i *Interpreter) lookUpVariable(name Token, exprID int) (Value, error) {
	if distance, ok := i.locals[exprID]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

// ---- Statement execution ----

func (s *ExpressionStmt) exec(i *Interpreter) (*returnSignal, error) {
	_, err := s.Expression.eval(i)
	return nil, err
}

func (s *PrintStmt) exec(i *Interpreter) (*returnSignal, error) {
	v, err := s.Expression.eval(i)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(i.stdout, v.String())
	return nil, nil
}

func (s *VarStmt) exec(i *Interpreter) (*returnSignal, error) {
	var value Value = Nil{}
	if s.Initializer != nil {
		v, err := s.Initializer.eval(i)
		if err != nil {
			return nil, err
		}
		value = v
	}
	i.environment.Define(s.Name.Lexeme, value)
	return nil, nil
}

func (s *BlockStmt) exec(i *Interpreter) (*returnSignal, error) {
	return i.executeBlock(s.Statements, NewEnvironment(i.environment))
}

func (s *IfStmt) exec(i *Interpreter) (*returnSignal, error) {
	cond, err := s.Condition.eval(i)
	if err != nil {
		return nil, err
	}
	if IsTruthy(cond) {
		return s.Then.exec(i)
	}
	if s.Else != nil {
		return s.Else.exec(i)
	}
	return nil, nil
}

func (s *WhileStmt) exec(i *Interpreter) (*returnSignal, error) {
	for {
		cond, err := s.Condition.eval(i)
		if err != nil {
			return nil, err
		}
		if !IsTruthy(cond) {
			return nil, nil
		}
		sig, err := s.Body.exec(i)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
}

func (s *ReturnStmt) exec(i *Interpreter) (*returnSignal, error) {
	var value Value = Nil{}
	if s.Value != nil {
		v, err := s.Value.eval(i)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return &returnSignal{Value: value}, nil
}

func (s *FunctionStmt) exec(i *Interpreter) (*returnSignal, error) {
	fn := NewFunction(s, i.environment, false)
	i.environment.Define(s.Name.Lexeme, fn)
	return nil, nil
}

func (s *ClassStmt) exec(i *Interpreter) (*returnSignal, error) {
	var superclass *Class
	if s.Superclass != nil {
		v, err := s.Superclass.eval(i)
		if err != nil {
			return nil, err
		}
		sc, ok := v.(*Class)
		if !ok {
			return nil, &RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	i.environment.Define(s.Name.Lexeme, Nil{})

	env := i.environment
	if superclass != nil {
		env = NewEnvironment(i.environment)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, env, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	if superclass != nil {
		i.environment = env
	}
	i.environment.Assign(s.Name, class)
	if superclass != nil {
		i.environment = env.enclosing
	}
	return nil, nil
}

// ---- Expression evaluation ----

func (e *LiteralExpr) eval(i *Interpreter) (Value, error) {
	return e.Value, nil
}

func (e *GroupingExpr) eval(i *Interpreter) (Value, error) {
	return e.Expression.eval(i)
}

func (e *UnaryExpr) eval(i *Interpreter) (Value, error) {
	right, err := e.Right.eval(i)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case MINUS:
		return checkedNegate(e.Op, right)
	case BANG:
		return Bool(!IsTruthy(right)), nil
	}
	return nil, &RuntimeError{Token: e.Op, Message: "Unknown unary operator."}
}

func (e *BinaryExpr) eval(i *Interpreter) (Value, error) {
	left, err := e.Left.eval(i)
	if err != nil {
		return nil, err
	}
	right, err := e.Right.eval(i)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case PLUS:
		return checkedAdd(e.Op, left, right)
	case MINUS:
		return checkedSub(e.Op, left, right)
	case STAR:
		return checkedMul(e.Op, left, right)
	case SLASH:
		return checkedDiv(e.Op, left, right)
	case GREATER:
		return checkedGt(e.Op, left, right)
	case GREATER_EQUAL:
		return checkedGte(e.Op, left, right)
	case LESS:
		return checkedLt(e.Op, left, right)
	case LESS_EQUAL:
		return checkedLte(e.Op, left, right)
	case BANG_EQUAL:
		return Bool(!valuesEqual(left, right)), nil
	case EQUAL_EQUAL:
		return Bool(valuesEqual(left, right)), nil
	}
	return nil, &RuntimeError{Token: e.Op, Message: "Unknown binary operator."}
}

func (e *LogicalExpr) eval(i *Interpreter) (Value, error) {
	left, err := e.Left.eval(i)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return e.Right.eval(i)
}

func (e *VariableExpr) eval(i *Interpreter) (Value, error) {
	return i.lookUpVariable(e.Name, e.ID)
}

func (e *AssignExpr) eval(i *Interpreter) (Value, error) {
	value, err := e.Value.eval(i)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[e.ID]; ok {
		i.environment.AssignAt(distance, e.Name.Lexeme, value)
	} else if err := i.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (e *CallExpr) eval(i *Interpreter) (Value, error) {
	callee, err := e.Callee.eval(i)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := a.eval(i)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{Token: e.Paren, Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))}
	}
	return fn.Call(i, args)
}

func (e *GetExpr) eval(i *Interpreter) (Value, error) {
	obj, err := e.Object.eval(i)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Message: "Only instances have properties."}
	}
	return inst.Get(e.Name)
}

func (e *SetExpr) eval(i *Interpreter) (Value, error) {
	obj, err := e.Object.eval(i)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Message: "Only instances have fields."}
	}
	value, err := e.Value.eval(i)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, value)
	return value, nil
}

func (e *ThisExpr) eval(i *Interpreter) (Value, error) {
	return i.lookUpVariable(e.Keyword, e.ID)
}

func (e *SuperExpr) eval(i *Interpreter) (Value, error) {
	distance := i.locals[e.ID]
	superclass, _ := i.environment.GetAt(distance, "super").(*Class)
	instance, _ := i.environment.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeError{Token: e.Method, Message: "Undefined property '" + e.Method.Lexeme + "'."}
	}
	return method.bind(instance), nil
}
