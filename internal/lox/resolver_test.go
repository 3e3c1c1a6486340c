package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, src string) (*Interpreter, []Stmt, []*ResolverError) {
	t.Helper()
	stmts := parseSource(t, src)
	interp := NewInterpreter(&bytes.Buffer{})
	errs := NewResolver(interp).Resolve(stmts)
	return interp, stmts, errs
}

func TestResolver_ReadLocalInOwnInitializer_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "{ var a = a; }")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Can't read local variable in its own initializer.")
}

func TestResolver_RedeclareInSameScope_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "{ var a = 1; var a = 2; }")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Already a variable with this name in this scope.")
}

func TestResolver_TopLevelReturn_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "return 1;")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Can't return from top-level code.")
}

func TestResolver_ReturnValueFromInitializer_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, `class A { init() { return 1; } }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Can't return a value from an initializer.")
}

func TestResolver_BareReturnFromInitializer_IsFine(t *testing.T) {
	_, _, errs := resolveSource(t, `class A { init() { return; } }`)
	assert.Empty(t, errs)
}

func TestResolver_ThisOutsideClass_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "print this;")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Can't use 'this' outside of a class.")
}

func TestResolver_SuperOutsideClass_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "print super.x;")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Can't use 'super' outside of a class.")
}

func TestResolver_SuperWithNoSuperclass_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, `class A { m() { super.m(); } }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Can't use 'super' in a class with no superclass.")
}

func TestResolver_ClassInheritingFromItself_IsError(t *testing.T) {
	_, _, errs := resolveSource(t, "class A < A {}")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "A class can't inherit from itself.")
}

func TestResolver_RecordsDepthForClosureVariable(t *testing.T) {
	interp, stmts, errs := resolveSource(t, `fun make() {
  var i = 0;
  fun counter() {
    i = i + 1;
    return i;
  }
  return counter;
}`)
	require.Empty(t, errs)

	outer := stmts[0].(*FunctionStmt)
	inner := outer.Body[1].(*FunctionStmt)
	assignStmt := inner.Body[0].(*ExpressionStmt)
	assign := assignStmt.Expression.(*AssignExpr)

	depth, ok := interp.locals[assign.ID]
	require.True(t, ok, "assignment to closed-over variable must resolve locally")
	assert.Equal(t, 1, depth, "i is declared one scope up from counter's body")
}

func TestResolver_GlobalReferenceIsNotRecorded(t *testing.T) {
	interp, stmts, errs := resolveSource(t, `var g = 1;
fun f() { print g; }`)
	require.Empty(t, errs)

	fn := stmts[1].(*FunctionStmt)
	printStmt := fn.Body[0].(*PrintStmt)
	v := printStmt.Expression.(*VariableExpr)

	_, ok := interp.locals[v.ID]
	assert.False(t, ok, "a global reference must not appear in the side-table")
}
