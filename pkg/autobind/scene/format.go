package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/toyz/autobind/pkg/autobind"
)

// Format writes a document back in scene description syntax
func Format(doc *Document) string {
	var b strings.Builder
	for _, root := range doc.Roots {
		formatNode(&b, root, 0)
	}
	return b.String()
}

func formatNode(b *strings.Builder, node autobind.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(formatName(node.Name()))

	var types []string
	for _, c := range node.Components() {
		switch c := c.(type) {
		case *autobind.Owner:
			b.WriteString(formatOwner(c))
		case autobind.Bindable:
			// generated instances are attached at bind time, not declared
		default:
			types = append(types, strconv.Quote(c.ComponentType().String()))
		}
	}
	if len(types) > 0 {
		fmt.Fprintf(b, " [ %s ]", strings.Join(types, ", "))
	}

	children := node.Children()
	if len(children) == 0 {
		b.WriteString("\n")
		return
	}
	b.WriteString(" {\n")
	for _, child := range children {
		formatNode(b, child, depth+1)
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("}\n")
}

func formatOwner(owner *autobind.Owner) string {
	options := []string{"mode = " + owner.Mode.String()}
	if owner.CustomClassName != "" {
		options = append(options, "class = "+strconv.Quote(owner.CustomClassName))
	}
	return fmt.Sprintf(" @owner(%s)", strings.Join(options, ", "))
}

func formatName(name string) string {
	if isIdent(name) {
		return name
	}
	return strconv.Quote(name)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
