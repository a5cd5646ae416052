package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// execResult reports how a statement finished: normally, or by a `return`
// carrying value out to the nearest enclosing call.
type execResult struct {
	returning bool
	value     runtime.Value
}

func completed() execResult {
	return execResult{}
}

func returning(value runtime.Value) execResult {
	return execResult{returning: true, value: value}
}

func (i *Interpreter) execute(node ast.Stmt) (execResult, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluate(n.Expression)
		return completed(), err
	case *ast.PrintStatement:
		val, err := i.evaluate(n.Expression)
		if err != nil {
			return completed(), err
		}
		fmt.Fprintln(i.out, runtime.Stringify(val))
		return completed(), nil
	case *ast.VarDeclaration:
		return i.executeVarDeclaration(n)
	case *ast.Block:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(i.environment))
	case *ast.IfStatement:
		return i.executeIf(n)
	case *ast.WhileStatement:
		return i.executeWhile(n)
	case *ast.FunctionDeclaration:
		fn := runtime.NewFunction(n, i.environment, false)
		i.environment.Define(n.Name.Lexeme, fn)
		return completed(), nil
	case *ast.ReturnStatement:
		return i.executeReturn(n)
	case *ast.ClassDeclaration:
		return completed(), i.executeClassDeclaration(n)
	default:
		return completed(), fmt.Errorf("unsupported statement type: %T", node)
	}
}

func (i *Interpreter) executeVarDeclaration(stmt *ast.VarDeclaration) (execResult, error) {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Initializer != nil {
		val, err := i.evaluate(stmt.Initializer)
		if err != nil {
			return completed(), err
		}
		value = val
	}
	i.environment.Define(stmt.Name.Lexeme, value)
	return completed(), nil
}

// executeBlock runs stmts with env as the current scope. The previous scope
// is restored on every exit path.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *runtime.Environment) (execResult, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		result, err := i.execute(stmt)
		if err != nil || result.returning {
			return result, err
		}
	}
	return completed(), nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement) (execResult, error) {
	cond, err := i.evaluate(stmt.Condition)
	if err != nil {
		return completed(), err
	}
	if runtime.Truthy(cond) {
		return i.execute(stmt.ThenBranch)
	}
	if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}
	return completed(), nil
}

func (i *Interpreter) executeWhile(loop *ast.WhileStatement) (execResult, error) {
	for {
		cond, err := i.evaluate(loop.Condition)
		if err != nil {
			return completed(), err
		}
		if !runtime.Truthy(cond) {
			return completed(), nil
		}
		result, err := i.execute(loop.Body)
		if err != nil || result.returning {
			return result, err
		}
	}
}

func (i *Interpreter) executeReturn(stmt *ast.ReturnStatement) (execResult, error) {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Value != nil {
		val, err := i.evaluate(stmt.Value)
		if err != nil {
			return completed(), err
		}
		value = val
	}
	return returning(value), nil
}

// executeClassDeclaration binds the class name before building the class so
// method bodies can refer to it. Methods close over a scope holding `super`
// when there is a superclass.
func (i *Interpreter) executeClassDeclaration(stmt *ast.ClassDeclaration) error {
	name := stmt.Name.Lexeme
	i.environment.Define(name, runtime.NilValue{})

	var superclass *runtime.ClassValue
	if stmt.Superclass != nil {
		val, err := i.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}
		class, ok := val.(*runtime.ClassValue)
		if !ok {
			return runtime.NewError(runtime.InvalidSuperclass, "Superclass must be a class.").AtLine(stmt.Superclass.Name.Line)
		}
		superclass = class
	}

	previous := i.environment
	if superclass != nil {
		i.environment = runtime.NewEnvironment(i.environment)
		i.environment.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(stmt.Methods))
	for _, method := range stmt.Methods {
		isInit := method.Name.Lexeme == runtime.InitializerName
		methods[method.Name.Lexeme] = runtime.NewFunction(method, i.environment, isInit)
	}
	class := runtime.NewClass(name, superclass, methods)

	i.environment = previous
	return i.environment.Assign(name, class)
}
