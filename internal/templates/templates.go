package templates

import (
	"bytes"
	"strconv"
	"text/template"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/pkg/autobind"
)

// FieldData is one bound field of a generated type
type FieldData struct {
	Name string           // Go field name
	Type string           // qualified type expression, without the pointer
	Ref  autobind.TypeRef // declared component type
}

// FileData feeds both the generated and the manual file templates
type FileData struct {
	Package       string
	ClassName     string
	NodeName      string
	Receiver      string
	TypeVar       string
	TypeRef       autobind.TypeRef
	Imports       []Import
	BaseType      string
	Fields        []FieldData
	Interfaces    []string
	GeneratedFile string
}

var defaultRegistry = NewTemplateRegistry()

var funcMap = template.FuncMap{
	"quote": strconv.Quote,
}

// RenderGenerated renders the regenerated half of a generated type
func RenderGenerated(data FileData) (string, error) {
	return executeTemplate(GeneratedFileTemplate, data, FieldTableTemplate, RegistrationTemplate)
}

// RenderManual renders the create-once half of a generated type
func RenderManual(data FileData) (string, error) {
	return executeTemplate(ManualFileTemplate, data)
}

// ExecuteTemplate executes a registered template together with the named
// templates it includes
func ExecuteTemplate(name string, data interface{}, includes ...string) (string, error) {
	return executeTemplate(name, data, includes...)
}

func executeTemplate(name string, data interface{}, includes ...string) (string, error) {
	source, ok := defaultRegistry.Get(name)
	if !ok {
		return "", errors.New(errors.TemplateErrorCode, "template not found: "+name).
			WithContext("template", name)
	}

	tmpl, err := template.New(name).Funcs(funcMap).Option("missingkey=error").Parse(source)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}
	for _, include := range includes {
		if _, err := tmpl.New(include).Parse(defaultRegistry.MustGet(include)); err != nil {
			return "", errors.WrapTemplateError(include, "parse", err)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}
	return buf.String(), nil
}
