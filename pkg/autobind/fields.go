package autobind

// FieldSetter is one generated field handle. Accepts and Set are typed
// closures emitted by the generator, so binding needs no reflection.
type FieldSetter struct {
	Name    string
	Type    TypeRef
	Accepts func(c Component) bool
	Set     func(c Component) bool
}

// FieldTable lists the settable fields of a generated type in declaration order
type FieldTable []FieldSetter

// Lookup returns the setter for name
func (t FieldTable) Lookup(name string) (FieldSetter, bool) {
	for _, setter := range t {
		if setter.Name == name {
			return setter, true
		}
	}
	return FieldSetter{}, false
}

// Names returns the field names in order
func (t FieldTable) Names() []string {
	names := make([]string, len(t))
	for i, setter := range t {
		names[i] = setter.Name
	}
	return names
}

// Bindable is implemented by every generated type
type Bindable interface {
	Component
	AutobindFields() FieldTable
}

// Field builds a setter that assigns components of concrete type T to dst.
// Generated code calls it once per binding entry.
func Field[T Component](name string, typ TypeRef, dst *T) FieldSetter {
	return FieldSetter{
		Name: name,
		Type: typ,
		Accepts: func(c Component) bool {
			_, ok := c.(T)
			return ok
		},
		Set: func(c Component) bool {
			v, ok := c.(T)
			if ok {
				*dst = v
			}
			return ok
		},
	}
}

// BoundNotifier is implemented by generated types whose hand-written half
// wants to run once all fields were set
type BoundNotifier interface {
	OnBound()
}
