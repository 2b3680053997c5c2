package autobind

import (
	"fmt"
	"path"
	"strings"

	"github.com/toyz/autobind/internal/utils"
)

// TypeRef names a Go type by import path and type name,
// e.g. "github.com/acme/ui/widgets.Button"
type TypeRef struct {
	Path string
	Name string
}

// ParseTypeRef splits s at the last dot after the last slash
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeRef{}, fmt.Errorf("empty type reference")
	}

	slash := strings.LastIndex(s, "/")
	dot := strings.LastIndex(s[slash+1:], ".")
	if dot < 0 {
		return TypeRef{}, fmt.Errorf("type reference '%s' has no package path", s)
	}
	dot += slash + 1

	ref := TypeRef{Path: s[:dot], Name: s[dot+1:]}
	if ref.Path == "" {
		return TypeRef{}, fmt.Errorf("type reference '%s' has an empty package path", s)
	}
	if !utils.IsValidIdentifier(ref.Name) {
		return TypeRef{}, fmt.Errorf("type reference '%s' has an invalid type name '%s'", s, ref.Name)
	}
	return ref, nil
}

// MustTypeRef is ParseTypeRef for static values; it panics on error
func MustTypeRef(s string) TypeRef {
	ref, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

// String returns the "path.Name" form
func (t TypeRef) String() string {
	if t.Path == "" {
		return t.Name
	}
	return t.Path + "." + t.Name
}

// Package returns the last element of the import path
func (t TypeRef) Package() string {
	if t.Path == "" {
		return ""
	}
	return path.Base(t.Path)
}

// IsZero reports whether the reference is unset
func (t TypeRef) IsZero() bool {
	return t.Path == "" && t.Name == ""
}

// MarshalText encodes the reference in its string form
func (t TypeRef) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes "path.Name"; an empty value yields the zero reference
func (t *TypeRef) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*t = TypeRef{}
		return nil
	}
	ref, err := ParseTypeRef(string(text))
	if err != nil {
		return err
	}
	*t = ref
	return nil
}

// Component is a typed unit attached to a node. Components are compared by
// interface equality, so implementations should be pointers.
type Component interface {
	ComponentType() TypeRef
}

// BasicComponent is a component that carries nothing but its type. Scene
// descriptions use it for types the host has no concrete implementation of.
type BasicComponent struct {
	Type TypeRef
}

// ComponentType implements Component
func (c *BasicComponent) ComponentType() TypeRef {
	return c.Type
}

// Node is an element of the scene tree
type Node interface {
	Name() string
	Children() []Node
	Components() []Component
}

// MutableNode is a node that can carry new components
type MutableNode interface {
	Node
	AddComponent(c Component)
}

// BasicNode is the in-memory Node implementation
type BasicNode struct {
	name       string
	parent     *BasicNode
	children   []Node
	components []Component
}

// NewNode creates a detached node
func NewNode(name string, components ...Component) *BasicNode {
	return &BasicNode{
		name:       name,
		components: append([]Component(nil), components...),
	}
}

// Name returns the display name
func (n *BasicNode) Name() string { return n.name }

// Children returns the direct children in insertion order
func (n *BasicNode) Children() []Node { return n.children }

// Components returns the attached components in insertion order
func (n *BasicNode) Components() []Component { return n.components }

// Parent returns the parent node, nil for a root
func (n *BasicNode) Parent() *BasicNode { return n.parent }

// AddComponent attaches c to the node
func (n *BasicNode) AddComponent(c Component) {
	n.components = append(n.components, c)
}

// RemoveComponent detaches c, reporting whether it was attached
func (n *BasicNode) RemoveComponent(c Component) bool {
	for i, existing := range n.components {
		if existing == c {
			n.components = append(n.components[:i], n.components[i+1:]...)
			return true
		}
	}
	return false
}

// AddChild appends child and returns it, so trees can be built inline
func (n *BasicNode) AddChild(child *BasicNode) *BasicNode {
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Child creates a named child node
func (n *BasicNode) Child(name string, components ...Component) *BasicNode {
	return n.AddChild(NewNode(name, components...))
}

// FindComponent returns the first component of type t on node
func FindComponent(node Node, t TypeRef) Component {
	for _, c := range node.Components() {
		if c != nil && c.ComponentType() == t {
			return c
		}
	}
	return nil
}

// HasComponent reports whether c is attached to node
func HasComponent(node Node, c Component) bool {
	for _, existing := range node.Components() {
		if existing == c {
			return true
		}
	}
	return false
}

// Walk visits root and every descendant in depth-first pre-order. The path
// handed to fn is slash separated and relative to root ("" for root itself).
func Walk(root Node, fn func(node Node, relPath string)) {
	walk(root, "", fn)
}

func walk(node Node, relPath string, fn func(Node, string)) {
	fn(node, relPath)
	for _, child := range node.Children() {
		walk(child, JoinPath(relPath, child.Name()), fn)
	}
}

// JoinPath appends a node name to a relative path
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// FindNode follows a relative path from root. The empty path is root.
func FindNode(root Node, relPath string) Node {
	relPath = strings.Trim(relPath, "/")
	if relPath == "" || relPath == "." {
		return root
	}

	current := root
	for _, segment := range strings.Split(relPath, "/") {
		var next Node
		for _, child := range current.Children() {
			if child.Name() == segment {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// PathOf returns the path of the node carrying c, relative to root
func PathOf(root Node, c Component) (string, bool) {
	found, ok := "", false
	Walk(root, func(node Node, relPath string) {
		if !ok && HasComponent(node, c) {
			found, ok = relPath, true
		}
	})
	return found, ok
}
