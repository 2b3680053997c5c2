package cli

import (
	"path/filepath"

	"github.com/toyz/autobind/internal/rules"
	"github.com/toyz/autobind/pkg/autobind/host"
)

// Config holds the configuration shared by every CLI command
type Config struct {
	// Root is the project root; relative paths below are resolved against it
	Root string

	// RulesFile is the rule set file, created with defaults when absent
	RulesFile string

	// Scenes lists scene files, directories or "dir/..." patterns
	Scenes []string

	// ModuleName is the custom module name for imports
	// If empty, will be determined from go.mod file
	ModuleName string

	// PrefsFile holds the pending bind queue shared with the host, by
	// default <root>/.autobind/prefs.yaml
	PrefsFile string

	// Owners restricts commands to owners matching any of these glob patterns
	Owners []string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// withDefaults fills unset fields
func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.RulesFile == "" {
		c.RulesFile = rules.DefaultFile
	}
	if len(c.Scenes) == 0 {
		c.Scenes = []string{"./..."}
	}
	return c
}

// resolve joins a relative path onto the project root
func (c Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// RulesPath returns the rule set file resolved against Root
func (c Config) RulesPath() string {
	c = c.withDefaults()
	return c.resolve(c.RulesFile)
}

// PrefsPath returns the pending queue file resolved against Root
func (c Config) PrefsPath() string {
	c = c.withDefaults()
	if c.PrefsFile == "" {
		return host.ProjectPrefsPath(c.Root)
	}
	return c.resolve(c.PrefsFile)
}
