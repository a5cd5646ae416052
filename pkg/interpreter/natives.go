package interpreter

import (
	"sort"
	"time"

	"lox/interpreter-go/pkg/runtime"
)

var nativeRegistry = map[string]*runtime.NativeFunctionValue{
	"clock": {Name: "clock", Argc: 0, Impl: clockNative},
}

func clockNative(args []runtime.Value) (runtime.Value, error) {
	seconds := float64(time.Now().UnixNano()) / float64(time.Second)
	return runtime.NumberValue{Val: seconds}, nil
}

// NativeNames lists every host function an interpreter can install.
func NativeNames() []string {
	names := make([]string, 0, len(nativeRegistry))
	for name := range nativeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsNative reports whether name is a known host function.
func IsNative(name string) bool {
	_, ok := nativeRegistry[name]
	return ok
}

func (i *Interpreter) installNatives() {
	for _, name := range i.natives {
		if fn, ok := nativeRegistry[name]; ok {
			i.globals.Define(name, fn)
		}
	}
}
