package templates

import (
	"strings"

	"github.com/lithammer/dedent"
)

// Template names
const (
	GeneratedFileTemplate = "generated-file"
	ManualFileTemplate    = "manual-file"
	FieldTableTemplate    = "field-table"
	RegistrationTemplate  = "registration"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerGeneratedTemplates()
	registry.registerManualTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Names returns the registered template names
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// registerGeneratedTemplates registers the templates of the regenerated file
func (tr *TemplateRegistry) registerGeneratedTemplates() {
	tr.templates[GeneratedFileTemplate] = `// Code generated by autobind. DO NOT EDIT.

package {{.Package}}

import (
{{range .Imports}}	{{.}}
{{end}})

// {{.ClassName}} holds the components bound from the '{{.NodeName}}' scene node.
type {{.ClassName}} struct {
{{if .BaseType}}	{{.BaseType}}
{{end}}{{range .Fields}}	{{.Name}} *{{.Type}}
{{end}}}
{{if .Interfaces}}
{{range .Interfaces}}var _ {{.}} = (*{{$.ClassName}})(nil)
{{end}}{{end}}
var {{.TypeVar}} = autobind.TypeRef{Path: {{quote .TypeRef.Path}}, Name: {{quote .TypeRef.Name}}}

{{template "` + RegistrationTemplate + `" .}}

// ComponentType implements autobind.Component.
func ({{.Receiver}} *{{.ClassName}}) ComponentType() autobind.TypeRef {
	return {{.TypeVar}}
}

{{template "` + FieldTableTemplate + `" .}}
`

	tr.templates[RegistrationTemplate] = `func init() {
	autobind.RegisterType({{.TypeVar}}, func() autobind.Bindable { return &{{.ClassName}}{} })
}`

	tr.templates[FieldTableTemplate] = `// AutobindFields implements autobind.Bindable.
func ({{.Receiver}} *{{.ClassName}}) AutobindFields() autobind.FieldTable {
	return autobind.FieldTable{
{{range .Fields}}		autobind.Field({{quote .Name}}, autobind.TypeRef{Path: {{quote .Ref.Path}}, Name: {{quote .Ref.Name}}}, &{{$.Receiver}}.{{.Name}}),
{{end}}	}
}`
}

// registerManualTemplates registers the template of the create-once file
func (tr *TemplateRegistry) registerManualTemplates() {
	tr.templates[ManualFileTemplate] = strings.TrimLeft(dedent.Dedent(`
		package {{.Package}}

		// This file belongs to you: autobind creates it once and never touches it
		// again. Bound fields are declared in {{.GeneratedFile}}.

		// OnBound runs after every field of {{.ClassName}} has been bound.
		func ({{.Receiver}} *{{.ClassName}}) OnBound() {
		}
	`), "\n")
}
