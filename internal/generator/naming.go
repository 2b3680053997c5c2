package generator

import (
	"strings"

	"github.com/toyz/autobind/internal/utils"
)

const (
	GeneratedSuffix = "_autobind.go"
	generatedStem   = "autobind"
	typeVarPrefix   = "autobindType"
	receiverName    = "v"
)

// reservedFields are method names of every generated type
var reservedFields = map[string]bool{
	"ComponentType":  true,
	"AutobindFields": true,
	"OnBound":        true,
}

// build constraint suffixes the go tool reads from file names
var constrainedSuffixes = map[string]bool{
	"test": true,
	// GOOS
	"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
	"illumos": true, "ios": true, "js": true, "linux": true, "netbsd": true,
	"openbsd": true, "plan9": true, "solaris": true, "wasip1": true, "windows": true,
	// GOARCH
	"386": true, "amd64": true, "arm": true, "arm64": true, "loong64": true,
	"mips": true, "mipsle": true, "mips64": true, "mips64le": true, "ppc64": true,
	"ppc64le": true, "riscv64": true, "s390x": true, "wasm": true,
}

// FileBase returns the snake_case file name stem for a class. A stem whose
// last segment the go tool would read as a build constraint gets "_ui"
// appended, as does a stem ending in "_autobind" so that a manual file never
// shares its name with another owner's generated file.
func FileBase(className string) string {
	base := utils.ToSnakeCase(className)
	i := strings.LastIndex(base, "_")
	if i < 0 {
		return base
	}
	if last := base[i+1:]; constrainedSuffixes[last] || last == generatedStem {
		base += "_ui"
	}
	return base
}

// GeneratedFileName returns "<snake(class)>_autobind.go"
func GeneratedFileName(className string) string {
	return FileBase(className) + GeneratedSuffix
}

// ManualFileName returns "<snake(class)>.go"
func ManualFileName(className string) string {
	return FileBase(className) + ".go"
}
