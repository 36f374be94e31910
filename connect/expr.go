// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"fmt"
	"math"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/ast"
	"github.com/antonmedv/expr/vm"

	"github.com/emer/spikemap/errs"
)

// funcPrefix is prepended to whitelisted function names in the compiled
// tree, so a function is only reachable by calling it.
const funcPrefix = "fn_"

// exprFuncs are the functions an index expression may call.
var exprFuncs = map[string]interface{}{
	"arccos":  math.Acos,
	"arcsin":  math.Asin,
	"arctan":  math.Atan,
	"arctan2": math.Atan2,
	"acos":    math.Acos,
	"asin":    math.Asin,
	"atan":    math.Atan,
	"atan2":   math.Atan2,
	"ceil":    math.Ceil,
	"floor":   math.Floor,
	"cos":     math.Cos,
	"cosh":    math.Cosh,
	"sin":     math.Sin,
	"sinh":    math.Sinh,
	"tan":     math.Tan,
	"tanh":    math.Tanh,
	"exp":     math.Exp,
	"log":     math.Log,
	"log10":   math.Log10,
	"sqrt":    math.Sqrt,
	"fabs":    math.Abs,
	"abs":     math.Abs,
	"fmod":    math.Mod,
	"hypot":   math.Hypot,
	"power":   math.Pow,
	"pow":     math.Pow,
	"maximum": math.Max,
	"minimum": math.Min,
	"max":     math.Max,
	"min":     math.Min,
	"ldexp":   func(x, e float64) float64 { return math.Ldexp(x, int(e)) },
	"modf":    func(x float64) float64 { _, f := math.Modf(x); return f },
}

// exprConsts are the named constants besides the indexes i and j.
var exprConsts = map[string]float64{
	"e":  math.E,
	"pi": math.Pi,
}

// Expression is a compiled probability expression over the pre index i and
// post index j.  Only arithmetic, comparison, conditional, the whitelisted
// functions and the constants e and pi are accepted.
type Expression struct {
	Source string
	prog   *vm.Program
}

// Compile checks src against the whitelist and compiles it.  The evaluator
// builtins are disabled, so every call must name a whitelisted function.
func Compile(src string) (*Expression, error) {
	wl := &whitelist{}
	prog, err := expr.Compile(src, expr.Env(newEnv()), expr.DisableAllBuiltins(), expr.Patch(wl))
	if wl.bad != "" {
		return nil, errs.New(errs.Invalid, "expression %q: %s not allowed", src, wl.bad)
	}
	if err != nil {
		return nil, errs.Wrap(errs.Invalid, err, "expression %q", src)
	}
	return &Expression{Source: src, prog: prog}, nil
}

func newEnv() map[string]interface{} {
	env := make(map[string]interface{}, len(exprFuncs)+len(exprConsts)+2)
	for nm, fn := range exprFuncs {
		env[funcPrefix+nm] = fn
	}
	for nm, c := range exprConsts {
		env[nm] = c
	}
	env["i"] = 0.0
	env["j"] = 0.0
	return env
}

// Evaluator runs an expression repeatedly with its own environment.
// It is not safe for concurrent use.
type Evaluator struct {
	ex  *Expression
	env map[string]interface{}
}

// Evaluator returns a new evaluator of the expression.
func (ex *Expression) Evaluator() *Evaluator {
	return &Evaluator{ex: ex, env: newEnv()}
}

// Eval returns the value of the expression at (i, j).
func (ev *Evaluator) Eval(i, j int) (float64, error) {
	ev.env["i"] = float64(i)
	ev.env["j"] = float64(j)
	out, err := expr.Run(ev.ex.prog, ev.env)
	if err != nil {
		return 0, errs.Wrap(errs.Invalid, err, "expression %q at i=%d j=%d", ev.ex.Source, i, j)
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errs.New(errs.Invalid, "expression %q: result %T is not numeric", ev.ex.Source, out)
}

// whitelist rejects every node kind that is not plain numeric computation,
// and every identifier that is not an index, a constant or a whitelisted
// function.  Calls are renamed to their prefixed names, and % becomes fmod
// since the indexes are floats.  Children are visited before their parent.
type whitelist struct {
	bad string
}

func (wl *whitelist) Visit(node *ast.Node) {
	if wl.bad != "" {
		return
	}
	switch n := (*node).(type) {
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.ConditionalNode:
	case *ast.CallNode:
		id, ok := n.Callee.(*ast.IdentifierNode)
		if !ok || !isFunc(id.Value) {
			wl.bad = "function " + n.Callee.String()
			return
		}
		id.Value = funcPrefix + id.Value
	case *ast.UnaryNode:
		if !unaryOps[n.Operator] {
			wl.bad = "operator " + n.Operator
		}
	case *ast.BinaryNode:
		switch {
		case !binaryOps[n.Operator]:
			wl.bad = "operator " + n.Operator
		case n.Operator == "%":
			ast.Patch(node, &ast.CallNode{
				Callee:    &ast.IdentifierNode{Value: funcPrefix + "fmod"},
				Arguments: []ast.Node{n.Left, n.Right},
			})
		}
	case *ast.IdentifierNode:
		if !allowedIdent(n.Value) && !isFunc(n.Value) {
			wl.bad = "identifier " + n.Value
		}
	default:
		wl.bad = fmt.Sprintf("construct %T", *node)
	}
}

var unaryOps = map[string]bool{"-": true, "+": true, "!": true, "not": true}

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true, "^": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"and": true, "or": true, "&&": true, "||": true,
}

func isFunc(name string) bool {
	_, ok := exprFuncs[name]
	return ok
}

// allowedIdent reports whether name may be used as a value.  Function names
// are only reachable through their prefixed names, which only calls get.
func allowedIdent(name string) bool {
	switch name {
	case "i", "j":
		return true
	}
	_, ok := exprConsts[name]
	return ok
}
