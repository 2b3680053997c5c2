package autobind

import (
	"fmt"
	"strings"

	"github.com/toyz/autobind/internal/utils"
)

// Factory creates a fresh instance of a generated type
type Factory func() Bindable

// Registry maps generated types to their factories. Generated code registers
// into DefaultRegistry from init().
type Registry struct {
	*utils.BaseRegistry[string, Factory]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	base := utils.NewBaseRegistry[string, Factory]("autobind", "generated type")
	base.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[Factory]("generated type"),
		func(key string, value Factory, existing map[string]Factory) error {
			if value == nil {
				return fmt.Errorf("factory for '%s' cannot be nil", key)
			}
			return nil
		},
	))
	return &Registry{BaseRegistry: base}
}

// DefaultRegistry is the process-wide registry generated code registers into
var DefaultRegistry = NewRegistry()

// RegisterType registers the factory for a generated type. Registering the
// same type again replaces the factory.
func (r *Registry) RegisterType(typ TypeRef, factory Factory) error {
	return r.Register(typ.String(), factory)
}

// MustRegister is RegisterType for generated init functions
func (r *Registry) MustRegister(typ TypeRef, factory Factory) {
	if err := r.RegisterType(typ, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for an exact type
func (r *Registry) Lookup(typ TypeRef) (Factory, bool) {
	return r.Get(typ.String())
}

// LookupClass returns the factory of the only registered type named class.
// It fails when no type or more than one type carries that name.
func (r *Registry) LookupClass(class string) (Factory, error) {
	matches := r.Filter(func(key string, _ Factory) bool {
		return key == class || strings.HasSuffix(key, "."+class)
	})

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no generated type registered for class '%s'", class)
	case 1:
		for _, factory := range matches {
			return factory, nil
		}
	}

	keys := make([]string, 0, len(matches))
	for key := range matches {
		keys = append(keys, key)
	}
	return nil, fmt.Errorf("class '%s' is ambiguous: %s", class, strings.Join(sortStrings(keys), ", "))
}

// Types returns the registered type names in sorted order
func (r *Registry) Types() []string {
	return utils.SortedKeys(r.BaseRegistry)
}

// RegisterType registers into DefaultRegistry
func RegisterType(typ TypeRef, factory Factory) {
	DefaultRegistry.MustRegister(typ, factory)
}
