package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/internal/rules"
	"github.com/toyz/autobind/internal/templates"
	"github.com/toyz/autobind/internal/utils"
	"github.com/toyz/autobind/internal/utils/fileops"
	"github.com/toyz/autobind/pkg/autobind"
)

// Result describes the files written for one owner
type Result struct {
	ClassName     string
	TypeRef       autobind.TypeRef
	GeneratedPath string
	ManualPath    string
	ManualCreated bool
}

// Generator implements the CodeGenerator interface
type Generator struct {
	root           string
	moduleName     string
	moduleResolver ModuleResolver
	fileOps        *fileops.FileOps
	diagnostics    *utils.DiagnosticSystem
}

// NewGenerator creates a generator writing below projectRoot
func NewGenerator(projectRoot string, resolver ModuleResolver) *Generator {
	return &Generator{
		root:           projectRoot,
		moduleResolver: resolver,
		fileOps:        fileops.NewFileOps(),
		diagnostics:    utils.NewDiagnosticSystem(utils.DiagnosticSilent),
	}
}

// WithModule overrides the module path read from go.mod
func (g *Generator) WithModule(moduleName string) *Generator {
	g.moduleName = moduleName
	return g
}

// WithDiagnostics sets where progress is reported
func (g *Generator) WithDiagnostics(diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics != nil {
		g.diagnostics = diagnostics
	}
	return g
}

// OutputDir returns the absolute-or-root-relative directory of the
// generated package
func (g *Generator) OutputDir(rs *rules.RuleSet) (string, error) {
	base := filepath.FromSlash(rs.BasePath)
	if filepath.IsAbs(base) {
		return "", fmt.Errorf("base path '%s' must be relative to the project root", rs.BasePath)
	}
	clean, err := g.fileOps.PathValidator().ValidateAndCleanOptional(filepath.Join(base, rs.Namespace))
	if err != nil {
		return "", err
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("base path '%s' leaves the project root", rs.BasePath)
	}
	return filepath.Join(g.root, clean), nil
}

// Generate writes the regenerated file of owner and creates its manual file
// when absent. bindings are emitted in order.
func (g *Generator) Generate(owner *autobind.Owner, bindings []autobind.BindingEntry, rs *rules.RuleSet) (Result, error) {
	if err := rules.Validate(rs); err != nil {
		return Result{}, err
	}
	if owner == nil {
		return Result{}, errors.NewGenerationError("<nil>", "validate", "no owner")
	}

	class := owner.ClassName()
	result := Result{ClassName: class}

	if err := checkClassName(class); err != nil {
		return result, err
	}
	if len(bindings) == 0 {
		return result, errors.NewGenerationError(class, "validate", "no bindings to generate")
	}

	dir, err := g.OutputDir(rs)
	if err != nil {
		genErr := errors.WrapGenerationError(class, "path", "", err)
		genErr.WithSuggestion("set base_path to a directory inside the project")
		return result, genErr
	}
	result.GeneratedPath = filepath.Join(dir, GeneratedFileName(class))
	result.ManualPath = filepath.Join(dir, ManualFileName(class))

	packagePath, err := g.packagePath(dir)
	if err != nil {
		genErr := errors.WrapGenerationError(class, "resolve module", "", err)
		genErr.WithSuggestion("run inside a Go module or pass --module")
		return result, genErr
	}
	result.TypeRef = autobind.TypeRef{Path: packagePath, Name: class}

	data, err := buildFileData(owner, bindings, rs, result)
	if err != nil {
		return result, err
	}

	generated, err := render(class, result.GeneratedPath, templates.RenderGenerated, data)
	if err != nil {
		return result, err
	}
	if err := g.checkOverwrite(class, result.GeneratedPath); err != nil {
		return result, err
	}
	if err := g.fileOps.WriteFile(result.GeneratedPath, generated); err != nil {
		return result, errors.WrapGenerationError(class, "write", result.GeneratedPath, err)
	}
	g.diagnostics.Verbose("wrote %s", result.GeneratedPath)

	manual, err := render(class, result.ManualPath, templates.RenderManual, data)
	if err != nil {
		return result, err
	}
	created, err := g.fileOps.CreateIfAbsent(result.ManualPath, manual)
	if err != nil {
		return result, errors.WrapGenerationError(class, "write", result.ManualPath, err)
	}
	result.ManualCreated = created
	if created {
		g.diagnostics.Verbose("created %s", result.ManualPath)
	}

	return result, nil
}

// checkOverwrite refuses to replace an existing file that the generator
// did not write
func (g *Generator) checkOverwrite(class, path string) error {
	if !g.fileOps.Exists(path) {
		return nil
	}
	generated, err := g.fileOps.StartsWith(path, []byte(utils.GeneratedHeader))
	if err != nil {
		return errors.WrapGenerationError(class, "write", path, err)
	}
	if generated {
		return nil
	}
	genErr := errors.NewGenerationError(class, "write", "refusing to overwrite a file that was not generated by autobind").
		WithTargetFile(path)
	genErr.WithSuggestions(
		"move or rename the existing file",
		"or set a different class on the owner with @owner(class = \"...\")",
	)
	return genErr
}

func (g *Generator) packagePath(dir string) (string, error) {
	if g.moduleResolver == nil {
		return "", fmt.Errorf("no module resolver configured")
	}
	moduleName, err := g.moduleResolver.ResolveModuleName(g.moduleName)
	if err != nil {
		return "", err
	}
	return g.moduleResolver.BuildPackagePath(moduleName, dir)
}

func render(class, target string, fn func(templates.FileData) (string, error), data templates.FileData) ([]byte, error) {
	source, err := fn(data)
	if err != nil {
		return nil, errors.WrapGenerationError(class, "render", target, err)
	}
	formatted, err := utils.FormatGoSource(filepath.Base(target), []byte(source))
	if err != nil {
		return nil, errors.WrapGenerationError(class, "format", target, err)
	}
	return formatted, nil
}

func checkClassName(class string) error {
	if !utils.IsValidIdentifier(class) || class == "_" {
		return errors.NewGenerationError(class, "validate", fmt.Sprintf("'%s' is not a valid type name", class))
	}
	if strings.HasPrefix(class, typeVarPrefix) {
		return errors.NewGenerationError(class, "validate", fmt.Sprintf("type names may not start with '%s'", typeVarPrefix))
	}
	return nil
}

func buildFileData(owner *autobind.Owner, bindings []autobind.BindingEntry, rs *rules.RuleSet, result Result) (templates.FileData, error) {
	class := result.ClassName
	im := templates.NewImportManager(result.TypeRef.Path)
	im.Reserve(class, typeVarPrefix+class)

	nodeName := class
	if node := owner.Node(); node != nil {
		nodeName = node.Name()
	}

	data := templates.FileData{
		Package:       rs.Namespace,
		ClassName:     class,
		NodeName:      nodeName,
		Receiver:      receiverName,
		TypeVar:       typeVarPrefix + class,
		TypeRef:       result.TypeRef,
		GeneratedFile: filepath.Base(result.GeneratedPath),
	}

	taken := make(map[string]bool, len(bindings))
	if !rs.BaseType.IsZero() {
		data.BaseType = im.Qualify(rs.BaseType)
		taken[rs.BaseType.Name] = true
	}

	for _, entry := range bindings {
		if err := checkField(class, entry, taken); err != nil {
			return data, err
		}
		taken[entry.FieldName] = true
		data.Fields = append(data.Fields, templates.FieldData{
			Name: entry.FieldName,
			Type: im.Qualify(entry.DeclaredType),
			Ref:  entry.DeclaredType,
		})
	}

	for _, iface := range rs.Interfaces {
		data.Interfaces = append(data.Interfaces, im.Qualify(iface))
	}
	for _, imp := range rs.AdditionalImports {
		im.AddBlankImport(imp)
	}
	data.Imports = im.Imports()
	return data, nil
}

func checkField(class string, entry autobind.BindingEntry, taken map[string]bool) error {
	name := entry.FieldName
	switch {
	case name == "" || name == "_" || !utils.IsValidIdentifier(name):
		return errors.NewGenerationError(class, "validate", fmt.Sprintf("'%s' is not a valid field name", name))
	case reservedFields[name]:
		return errors.NewGenerationError(class, "validate", fmt.Sprintf("field '%s' collides with a generated method", name))
	case taken[name]:
		return errors.NewGenerationError(class, "validate", fmt.Sprintf("duplicate field '%s'", name))
	case entry.DeclaredType.IsZero():
		return errors.NewGenerationError(class, "validate", fmt.Sprintf("field '%s' has no declared type", name))
	}
	if err := rules.CheckTypeRef(entry.DeclaredType.String()); err != nil {
		return errors.WrapGenerationError(class, "validate", "", fmt.Errorf("field '%s': %w", name, err))
	}
	return nil
}
