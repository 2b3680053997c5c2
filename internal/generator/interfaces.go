package generator

import (
	"github.com/toyz/autobind/internal/rules"
	"github.com/toyz/autobind/pkg/autobind"
)

// CodeGenerator writes the two source files of one owner
type CodeGenerator interface {
	Generate(owner *autobind.Owner, bindings []autobind.BindingEntry, rs *rules.RuleSet) (Result, error)
}

// ModuleResolver resolves the import path of the generated package
type ModuleResolver interface {
	ResolveModuleName(customName string) (string, error)
	BuildPackagePath(moduleName, packageDir string) (string, error)
}
