package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// call checks arity before anything is bound, then dispatches on the
// callee's shape.
func (i *Interpreter) call(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtime.NewError(runtime.NotCallable, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtime.NewError(runtime.ArityMismatch, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	switch c := fn.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(c, args)
	case *runtime.NativeFunctionValue:
		return invokeNative(c, args)
	case *runtime.ClassValue:
		return i.instantiate(c, args)
	default:
		return nil, runtime.NewError(runtime.NotCallable, "Can only call functions and classes.")
	}
}

// invokeFunction runs the body in a fresh scope nested in the closure.
// Initializers always yield the instance bound to `this`.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}
	result, err := i.executeBlock(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	if result.returning {
		return result.value, nil
	}
	return runtime.NilValue{}, nil
}

func invokeNative(fn *runtime.NativeFunctionValue, args []runtime.Value) (runtime.Value, error) {
	val, err := fn.Impl(args)
	if err != nil {
		if rtErr, ok := err.(*runtime.RuntimeError); ok {
			return nil, rtErr
		}
		return nil, runtime.NewError(runtime.NativeFailure, "%s: %v", fn.Name, err)
	}
	if val == nil {
		return runtime.NilValue{}, nil
	}
	return val, nil
}

func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if initializer, ok := class.FindMethod(runtime.InitializerName); ok {
		if _, err := i.invokeFunction(initializer.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (i *Interpreter) evaluateGet(expr *ast.Get) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}
	val, err := runtime.GetProperty(object, expr.Name.Lexeme)
	if err != nil {
		return nil, atLine(err, expr.Name.Line)
	}
	return val, nil
}

func (i *Interpreter) evaluateSet(expr *ast.Set) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}
	switch object.(type) {
	case *runtime.InstanceValue, *runtime.ClassValue:
	default:
		return nil, runtime.NewError(runtime.NotAnObject, "Only instances have fields.").AtLine(expr.Name.Line)
	}
	value, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}
	if err := runtime.SetProperty(object, expr.Name.Lexeme, value); err != nil {
		return nil, atLine(err, expr.Name.Line)
	}
	return value, nil
}

// evaluateSuper finds the method on the superclass of the class that
// lexically encloses the expression and binds it to the current `this`.
func (i *Interpreter) evaluateSuper(expr *ast.Super) (runtime.Value, error) {
	depth, ok := i.locals[expr]
	if !ok {
		return nil, runtime.NewError(runtime.UndefinedVariable, "Undefined variable 'super'.").AtLine(expr.Keyword.Line)
	}
	val, err := i.environment.GetAt(depth, "super")
	if err != nil {
		return nil, atLine(err, expr.Keyword.Line)
	}
	superclass, ok := val.(*runtime.ClassValue)
	if !ok {
		return nil, runtime.NewError(runtime.InvalidSuperclass, "Superclass must be a class.").AtLine(expr.Keyword.Line)
	}
	this, err := i.environment.GetAt(depth-1, "this")
	if err != nil {
		return nil, atLine(err, expr.Keyword.Line)
	}
	method, ok := superclass.FindMethod(expr.Method.Lexeme)
	if !ok {
		return nil, runtime.NewError(runtime.UndefinedProperty, "Undefined property '%s'.", expr.Method.Lexeme).AtLine(expr.Method.Line)
	}
	instance, _ := this.(*runtime.InstanceValue)
	return method.Bind(instance), nil
}
