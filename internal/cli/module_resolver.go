package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/autobind/internal/utils"
)

// ModuleResolver handles resolving Go module information for a project root
type ModuleResolver struct {
	root   string
	parser *utils.GoModParser
}

// NewModuleResolver creates a module resolver that searches for go.mod
// from root upwards
func NewModuleResolver(root string) *ModuleResolver {
	return &ModuleResolver{
		root:   root,
		parser: utils.NewGoModParser(),
	}
}

// ResolveModuleName resolves the module name for imports
// If customModule is provided, it uses that; otherwise reads from go.mod
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	goModPath, err := r.parser.FindGoModFile(r.root)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
	}
	return r.parser.ParseModuleName(goModPath)
}

// ModuleRoot returns the directory holding go.mod, or the project root
// when there is none
func (r *ModuleResolver) ModuleRoot() string {
	goModPath, err := r.parser.FindGoModFile(r.root)
	if err != nil {
		abs, absErr := filepath.Abs(r.root)
		if absErr != nil {
			return r.root
		}
		return abs
	}
	return filepath.Dir(goModPath)
}

// BuildPackagePath builds the full import path for a package directory
func (r *ModuleResolver) BuildPackagePath(moduleName, packageDir string) (string, error) {
	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}

	relPath, err := filepath.Rel(r.ModuleRoot(), absPackageDir)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}

	importPath := filepath.ToSlash(relPath)
	if importPath == ".." || strings.HasPrefix(importPath, "../") {
		return "", fmt.Errorf("package directory %s is outside module %s", packageDir, moduleName)
	}
	if importPath == "." {
		return moduleName, nil
	}
	return fmt.Sprintf("%s/%s", moduleName, importPath), nil
}
