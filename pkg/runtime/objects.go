package runtime

// InitializerName is the method run when a class is called.
const InitializerName = "init"

// FindMethod looks name up in the class's own method table, then walks the
// superclass chain.
func (c *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Arity of a class is the arity of its initializer, or 0 without one.
func (c *ClassValue) Arity() int {
	if init, ok := c.FindMethod(InitializerName); ok {
		return init.Arity()
	}
	return 0
}

// BindMethod resolves name through the class chain and binds it to instance.
// A nil instance yields the method without a `this` binding, which is how a
// method read straight off a class object behaves.
func (c *ClassValue) BindMethod(name string, instance *InstanceValue) (*FunctionValue, error) {
	if m, ok := c.Methods[name]; ok {
		return m.Bind(instance), nil
	}
	if c.Superclass != nil {
		return c.Superclass.BindMethod(name, instance)
	}
	return nil, undefinedProperty(name)
}

// Get reads a class-level field, falling back to an unbound method.
func (c *ClassValue) Get(name string) (Value, error) {
	if v, ok := c.Fields[name]; ok {
		return v, nil
	}
	method, err := c.BindMethod(name, nil)
	if err != nil {
		return nil, err
	}
	return method, nil
}

// Set writes a class-level field.
func (c *ClassValue) Set(name string, value Value) {
	c.Fields[name] = value
}

// Get reads a field, falling back to a method bound to this instance.
// Fields shadow methods of the same name.
func (i *InstanceValue) Get(name string) (Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	method, err := i.Class.BindMethod(name, i)
	if err != nil {
		return nil, err
	}
	return method, nil
}

// Set always writes the field table, even when a method shares the name.
func (i *InstanceValue) Set(name string, value Value) {
	i.Fields[name] = value
}

// GetProperty dispatches a property read on any value.
func GetProperty(obj Value, name string) (Value, error) {
	switch o := obj.(type) {
	case *InstanceValue:
		return o.Get(name)
	case *ClassValue:
		return o.Get(name)
	default:
		return nil, NewError(NotAnObject, "Only instances have properties.")
	}
}

// SetProperty dispatches a property write on any value.
func SetProperty(obj Value, name string, value Value) error {
	switch o := obj.(type) {
	case *InstanceValue:
		o.Set(name, value)
		return nil
	case *ClassValue:
		o.Set(name, value)
		return nil
	default:
		return NewError(NotAnObject, "Only instances have fields.")
	}
}

func undefinedProperty(name string) *RuntimeError {
	return NewError(UndefinedProperty, "Undefined property '%s'.", name)
}
