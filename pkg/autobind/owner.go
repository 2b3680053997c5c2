package autobind

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/toyz/autobind/internal/utils"
)

// OwnerType is the component type of Owner
var OwnerType = TypeRef{Path: "github.com/toyz/autobind/pkg/autobind", Name: "Owner"}

// BindMode selects how an owner collects its bindings
type BindMode int

const (
	// Manual owners only carry entries added by hand
	Manual BindMode = iota
	// AutoSuffix owners are filled by the naming rules
	AutoSuffix
	// Hybrid owners accept both
	Hybrid
)

// String returns the mode name as written in scene files
func (m BindMode) String() string {
	switch m {
	case Manual:
		return "Manual"
	case AutoSuffix:
		return "AutoSuffix"
	case Hybrid:
		return "Hybrid"
	default:
		return fmt.Sprintf("BindMode(%d)", int(m))
	}
}

// Description is a one-line explanation of the mode
func (m BindMode) Description() string {
	switch m {
	case Manual:
		return "bindings are added by hand, naming rules are not applied"
	case AutoSuffix:
		return "child nodes are bound by name suffix"
	case Hybrid:
		return "suffix binding plus hand-added entries"
	default:
		return "unknown bind mode"
	}
}

// ParseBindMode is the inverse of String, case-insensitive
func ParseBindMode(s string) (BindMode, error) {
	for _, m := range []BindMode{Manual, AutoSuffix, Hybrid} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return Manual, fmt.Errorf("unknown bind mode '%s' (expected Manual, AutoSuffix or Hybrid)", s)
}

// UsesSuffixRules reports whether the naming rules apply to this mode
func (m BindMode) UsesSuffixRules() bool {
	return m == AutoSuffix || m == Hybrid
}

// BindingEntry maps one generated field to a component in the owner subtree
type BindingEntry struct {
	FieldName    string
	Target       Component // live handle, nil when unresolved
	DeclaredType TypeRef
	Path         string // node path relative to the owner node
}

// Owner is the root of a binding configuration. It is attached to its own
// node as a component.
type Owner struct {
	node            Node
	Mode            BindMode
	CustomClassName string
	Bindings        []BindingEntry
}

// NewOwner creates an owner for node and attaches it when node is mutable
func NewOwner(node Node, mode BindMode) *Owner {
	owner := &Owner{node: node, Mode: mode}
	if mutable, ok := node.(MutableNode); ok {
		mutable.AddComponent(owner)
	}
	return owner
}

// OwnerOf returns the owner attached to node, if any
func OwnerOf(node Node) *Owner {
	for _, c := range node.Components() {
		if owner, ok := c.(*Owner); ok {
			return owner
		}
	}
	return nil
}

// ComponentType implements Component
func (o *Owner) ComponentType() TypeRef {
	return OwnerType
}

// Node returns the node the owner is rooted at
func (o *Owner) Node() Node {
	return o.node
}

// ClassName returns the custom class name if set, else a safe type name
// derived from the node name
func (o *Owner) ClassName() string {
	if name := strings.TrimSpace(o.CustomClassName); name != "" {
		return name
	}
	if o.node == nil {
		return utils.DefaultClassName
	}
	return utils.SafeClassName(o.node.Name())
}

// Binding returns the entry for field
func (o *Owner) Binding(field string) (BindingEntry, bool) {
	for _, entry := range o.Bindings {
		if entry.FieldName == field {
			return entry, true
		}
	}
	return BindingEntry{}, false
}

// IsBound reports whether c is already the target of an entry
func (o *Owner) IsBound(c Component) bool {
	if c == nil {
		return false
	}
	for _, entry := range o.Bindings {
		if entry.Target == c {
			return true
		}
	}
	return false
}

// FieldNames returns the entry field names in order
func (o *Owner) FieldNames() []string {
	names := make([]string, 0, len(o.Bindings))
	for _, entry := range o.Bindings {
		names = append(names, entry.FieldName)
	}
	return names
}

// AddBinding binds target under fieldName. The target must live in the
// owner subtree and fieldName must be a free, valid identifier.
func (o *Owner) AddBinding(target Component, fieldName string) (BindingEntry, error) {
	if target == nil {
		return BindingEntry{}, fmt.Errorf("cannot bind a nil component")
	}
	if !utils.IsValidIdentifier(fieldName) || token.IsKeyword(fieldName) {
		return BindingEntry{}, fmt.Errorf("'%s' is not a valid field name", fieldName)
	}
	if _, exists := o.Binding(fieldName); exists {
		return BindingEntry{}, fmt.Errorf("field '%s' is already bound on %s", fieldName, o.ClassName())
	}
	if o.IsBound(target) {
		return BindingEntry{}, fmt.Errorf("%s is already bound on %s", target.ComponentType(), o.ClassName())
	}

	relPath, ok := PathOf(o.node, target)
	if !ok {
		return BindingEntry{}, fmt.Errorf("%s is not attached below '%s'", target.ComponentType(), o.node.Name())
	}

	entry := BindingEntry{
		FieldName:    fieldName,
		Target:       target,
		DeclaredType: target.ComponentType(),
		Path:         relPath,
	}
	o.Bindings = append(o.Bindings, entry)
	return entry, nil
}

// RemoveBinding drops the entry for field, reporting whether it existed
func (o *Owner) RemoveBinding(field string) bool {
	for i, entry := range o.Bindings {
		if entry.FieldName == field {
			o.Bindings = append(o.Bindings[:i], o.Bindings[i+1:]...)
			return true
		}
	}
	return false
}

// ValidBindings returns the entries that have a target and a field name
func (o *Owner) ValidBindings() []BindingEntry {
	valid := make([]BindingEntry, 0, len(o.Bindings))
	for _, entry := range o.Bindings {
		if entry.Target != nil && strings.TrimSpace(entry.FieldName) != "" {
			valid = append(valid, entry)
		}
	}
	return valid
}
