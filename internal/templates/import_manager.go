package templates

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/toyz/autobind/internal/utils"
	"github.com/toyz/autobind/pkg/autobind"
)

// RuntimeImport is the package every generated file depends on
const RuntimeImport = "github.com/toyz/autobind/pkg/autobind"

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// Import is one line of a generated import block
type Import struct {
	Alias string // explicit name, empty when the default package name is used
	Path  string
	Blank bool
}

// String renders the import spec as it appears inside an import block
func (i Import) String() string {
	switch {
	case i.Blank:
		return fmt.Sprintf("_ %q", i.Path)
	case i.Alias != "":
		return fmt.Sprintf("%s %q", i.Alias, i.Path)
	default:
		return fmt.Sprintf("%q", i.Path)
	}
}

// ImportManager assigns package names for the types a generated file refers to.
// Two packages with the same default name get numbered aliases.
type ImportManager struct {
	selfPath string
	byPath   map[string]string // path -> name
	byName   map[string]string // name -> path
	blank    map[string]bool
}

// NewImportManager creates an import manager for a file living in selfPath.
// The runtime package is always imported under its own name.
func NewImportManager(selfPath string) *ImportManager {
	im := &ImportManager{
		selfPath: selfPath,
		byPath:   make(map[string]string),
		byName:   make(map[string]string),
		blank:    make(map[string]bool),
	}
	im.AddImport(RuntimeImport)
	return im
}

// AddImport registers an import path and returns the name it is referred to by
func (im *ImportManager) AddImport(importPath string) string {
	if name, ok := im.byPath[importPath]; ok {
		return name
	}
	base := PackageName(importPath)
	name := base
	for i := 2; ; i++ {
		if _, taken := im.byName[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
	im.byPath[importPath] = name
	im.byName[name] = importPath
	delete(im.blank, importPath)
	return name
}

// Reserve keeps name from being used as an import name, for package level
// identifiers declared by the generated file itself
func (im *ImportManager) Reserve(names ...string) {
	for _, name := range names {
		if _, taken := im.byName[name]; !taken {
			im.byName[name] = ""
		}
	}
}

// AddBlankImport registers a side-effect import. It is dropped if the same
// path is also imported by name.
func (im *ImportManager) AddBlankImport(importPath string) {
	if importPath == "" || importPath == im.selfPath {
		return
	}
	if _, named := im.byPath[importPath]; named {
		return
	}
	im.blank[importPath] = true
}

// Qualify returns the Go expression naming ref from inside the generated file
func (im *ImportManager) Qualify(ref autobind.TypeRef) string {
	if ref.Path == "" || ref.Path == im.selfPath {
		return ref.Name
	}
	return im.AddImport(ref.Path) + "." + ref.Name
}

// Imports returns every registered import sorted by path
func (im *ImportManager) Imports() []Import {
	imports := make([]Import, 0, len(im.byPath)+len(im.blank))
	for p, name := range im.byPath {
		imp := Import{Path: p}
		if name != path.Base(p) {
			imp.Alias = name
		}
		imports = append(imports, imp)
	}
	for p := range im.blank {
		imports = append(imports, Import{Path: p, Blank: true})
	}
	sort.Slice(imports, func(i, j int) bool {
		if imports[i].Path == imports[j].Path {
			return !imports[i].Blank
		}
		return imports[i].Path < imports[j].Path
	})
	return imports
}

// PackageName guesses the package clause of an import path:
//   - "github.com/acme/ui/widgets" -> "widgets"
//   - "gopkg.in/yaml.v3" -> "yaml"
//   - "github.com/acme/go-widgets/v2" -> "widgets"
func PackageName(importPath string) string {
	elems := strings.Split(strings.Trim(importPath, "/"), "/")
	last := elems[len(elems)-1]
	if majorVersion.MatchString(last) && len(elems) > 1 {
		last = elems[len(elems)-2]
	}
	if i := strings.Index(last, ".v"); i > 0 {
		last = last[:i]
	}
	last = strings.TrimPrefix(last, "go-")
	name := strings.ToLower(utils.SanitizeIdentifier(last))
	if !utils.IsPackageName(name) {
		return "pkg"
	}
	return name
}
