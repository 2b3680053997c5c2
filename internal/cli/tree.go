package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/toyz/autobind/pkg/autobind"
	"github.com/toyz/autobind/pkg/autobind/scene"
)

// PrintTree writes the node tree of doc. Owners show their mode and class,
// bound components show the field they are assigned to.
func PrintTree(w io.Writer, doc *scene.Document) error {
	fields := boundFields(doc)

	root := gtree.NewRoot(doc.Name)
	for _, node := range doc.Roots {
		addTreeNode(root, node, fields)
	}
	return gtree.OutputProgrammably(w, root)
}

func addTreeNode(parent *gtree.Node, node autobind.Node, fields map[autobind.Component]string) {
	child := parent.Add(treeLabel(node, fields))
	for _, c := range node.Children() {
		addTreeNode(child, c, fields)
	}
}

func treeLabel(node autobind.Node, fields map[autobind.Component]string) string {
	var b strings.Builder
	b.WriteString(node.Name())

	var components, bound []string
	for _, c := range node.Components() {
		if owner, ok := c.(*autobind.Owner); ok {
			fmt.Fprintf(&b, " @owner(%s) %s", owner.Mode, owner.ClassName())
			continue
		}
		components = append(components, c.ComponentType().Name)
		if field, ok := fields[c]; ok {
			bound = append(bound, field)
		}
	}
	if len(components) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(components, ", "))
	}
	if len(bound) > 0 {
		fmt.Fprintf(&b, " => %s", strings.Join(bound, ", "))
	}
	return b.String()
}

// boundFields maps every bound component to "Class.field"
func boundFields(doc *scene.Document) map[autobind.Component]string {
	fields := make(map[autobind.Component]string)
	for _, owner := range doc.Owners() {
		for _, entry := range owner.Bindings {
			if entry.Target != nil {
				fields[entry.Target] = owner.ClassName() + "." + entry.FieldName
			}
		}
	}
	return fields
}
