// Package scene loads scene descriptions into node trees, keeps binding
// sidecar files next to them and gives owners ids that survive a restart.
//
// A scene description lists nodes, their components and their children:
//
//	Root @owner(mode = AutoSuffix, class = "LoginView") {
//	  Panel {
//	    ConfirmButton [ "github.com/acme/ui/widgets.Button" ]
//	    TitleLabel    [ "github.com/acme/ui/widgets.Text" ]
//	  }
//	}
//
// Node paths such as "Root/Panel/TitleLabel" address owners and bound
// components, so sibling nodes must have distinct names.
package scene

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/pkg/autobind"
)

// ComponentFactory creates the live component for a declared type
type ComponentFactory func(t autobind.TypeRef) autobind.Component

// PlaceholderFactory creates a BasicComponent carrying only its type
func PlaceholderFactory(t autobind.TypeRef) autobind.Component {
	return &autobind.BasicComponent{Type: t}
}

// LoadOption configures Load
type LoadOption func(*loadOptions)

type loadOptions struct {
	factory ComponentFactory
}

// WithComponentFactory replaces PlaceholderFactory
func WithComponentFactory(factory ComponentFactory) LoadOption {
	return func(o *loadOptions) {
		if factory != nil {
			o.factory = factory
		}
	}
}

// Document is a loaded scene
type Document struct {
	Name  string
	Roots []*autobind.BasicNode

	owners []*autobind.Owner
	paths  map[*autobind.Owner]string
}

// Owners returns the owners in document order
func (d *Document) Owners() []*autobind.Owner {
	return d.owners
}

// OwnerPath returns the document path of owner's node, e.g. "Root/Panel"
func (d *Document) OwnerPath(owner *autobind.Owner) string {
	return d.paths[owner]
}

// FindOwner returns the owner at a document path
func (d *Document) FindOwner(path string) *autobind.Owner {
	for _, owner := range d.owners {
		if d.paths[owner] == path {
			return owner
		}
	}
	return nil
}

// Node returns the node at a document path; the first segment names a root
func (d *Document) Node(path string) autobind.Node {
	path = strings.Trim(path, "/")
	rootName, rest, _ := strings.Cut(path, "/")
	for _, root := range d.Roots {
		if root.Name() == rootName {
			return autobind.FindNode(root, rest)
		}
	}
	return nil
}

// LoadFile reads and loads a scene file; the document is named after path
func LoadFile(path string, opts ...LoadOption) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return Load(path, src, opts...)
}

// Load parses a scene description into node trees and owners
func Load(name string, src []byte, opts ...LoadOption) (*Document, error) {
	options := loadOptions{factory: PlaceholderFactory}
	for _, opt := range opts {
		opt(&options)
	}

	ast, err := sceneParser.ParseBytes(name, src)
	if err != nil {
		return nil, syntaxError(name, err)
	}

	doc := &Document{
		Name:  name,
		paths: make(map[*autobind.Owner]string),
	}
	b := &builder{doc: doc, factory: options.factory}
	if err := b.checkSiblings(ast.Nodes, ""); err != nil {
		return nil, err
	}
	for _, decl := range ast.Nodes {
		root, err := b.build(decl, "")
		if err != nil {
			return nil, err
		}
		doc.Roots = append(doc.Roots, root)
	}
	return doc, nil
}

type builder struct {
	doc     *Document
	factory ComponentFactory
}

func (b *builder) build(decl *nodeAST, parentPath string) (*autobind.BasicNode, error) {
	if strings.TrimSpace(decl.Name) == "" {
		return nil, b.errorAt(decl.Pos.Line, decl.Pos.Column, "node name cannot be empty")
	}
	if strings.Contains(decl.Name, "/") {
		return nil, b.errorAt(decl.Pos.Line, decl.Pos.Column, fmt.Sprintf("node name '%s' cannot contain '/'", decl.Name)).WithToken(decl.Name)
	}

	node := autobind.NewNode(decl.Name)
	path := autobind.JoinPath(parentPath, decl.Name)

	for _, comp := range decl.Components {
		ref, err := autobind.ParseTypeRef(comp.Type)
		if err != nil {
			return nil, b.errorAt(comp.Pos.Line, comp.Pos.Column, err.Error()).WithToken(comp.Type)
		}
		node.AddComponent(b.factory(ref))
	}

	if decl.Owner != nil {
		if err := b.attachOwner(node, path, decl.Owner); err != nil {
			return nil, err
		}
	}

	if err := b.checkSiblings(decl.Children, path); err != nil {
		return nil, err
	}
	for _, childDecl := range decl.Children {
		child, err := b.build(childDecl, path)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

// checkSiblings rejects two nodes with the same name under one parent
func (b *builder) checkSiblings(decls []*nodeAST, parentPath string) error {
	seen := make(map[string]bool, len(decls))
	for _, decl := range decls {
		if !seen[decl.Name] {
			seen[decl.Name] = true
			continue
		}
		parent := parentPath
		if parent == "" {
			parent = "the document root"
		}
		return b.errorAt(decl.Pos.Line, decl.Pos.Column,
			fmt.Sprintf("duplicate node name '%s' under %s", decl.Name, parent)).WithToken(decl.Name)
	}
	return nil
}

func (b *builder) attachOwner(node *autobind.BasicNode, path string, decl *ownerAST) error {
	if decl.Keyword != "owner" {
		return b.errorAt(decl.Pos.Line, decl.Pos.Column, fmt.Sprintf("unknown marker '@%s'", decl.Keyword)).WithToken(decl.Keyword)
	}

	mode := autobind.AutoSuffix
	class := ""
	for _, opt := range decl.Options {
		switch opt.Key {
		case "mode":
			parsed, err := autobind.ParseBindMode(opt.Value)
			if err != nil {
				return b.errorAt(opt.Pos.Line, opt.Pos.Column, err.Error()).WithToken(opt.Value)
			}
			mode = parsed
		case "class":
			class = opt.Value
		default:
			return b.errorAt(opt.Pos.Line, opt.Pos.Column, fmt.Sprintf("unknown owner option '%s'", opt.Key)).WithToken(opt.Key)
		}
	}

	owner := autobind.NewOwner(node, mode)
	owner.CustomClassName = class
	b.doc.owners = append(b.doc.owners, owner)
	b.doc.paths[owner] = path
	return nil
}

func (b *builder) errorAt(line, column int, message string) *errors.SyntaxError {
	return errors.NewSyntaxError(message, errors.SourceLocation{
		File:   b.doc.Name,
		Line:   line,
		Column: column,
	})
}

func syntaxError(name string, err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return errors.NewSyntaxError(perr.Message(), errors.SourceLocation{
			File:   name,
			Line:   pos.Line,
			Column: pos.Column,
		})
	}
	return errors.NewSyntaxError(err.Error(), errors.SourceLocation{File: name})
}
