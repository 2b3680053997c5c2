package rules

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/lithammer/dedent"
	"gopkg.in/yaml.v3"

	"github.com/toyz/autobind/internal/errors"
)

var fileHeader = strings.TrimLeft(dedent.Dedent(`
	# autobind rule set
	#
	# suffix_rules are tested top to bottom against each node name; the first
	# rule whose suffix matches and whose component is on the node wins.
`), "\n")

// LoadFile loads and validates the rule set at path
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapConfigError(path, "load", err).
				WithSuggestion("run 'autobind config init' to create it")
		}
		return nil, errors.WrapConfigError(path, "read", err)
	}

	rs, err := Parse(data)
	if err != nil {
		return nil, errors.WrapConfigError(path, "parse", err)
	}
	if err := Validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Parse decodes YAML and fills in defaults for omitted fields. An omitted
// suffix_rules key gets the default rules; an explicit empty list stays empty.
func Parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &rs); err != nil {
			return nil, err
		}
	}
	applyDefaults(&rs)
	return &rs, nil
}

func applyDefaults(rs *RuleSet) {
	if rs.Namespace == "" {
		rs.Namespace = DefaultNamespace
	}
	if rs.BasePath == "" {
		rs.BasePath = DefaultBasePath
	}
	if rs.SuffixRules == nil {
		rs.SuffixRules = DefaultSuffixRules()
	}
}

// Marshal serializes a rule set with the explanatory header
func Marshal(rs *RuleSet) ([]byte, error) {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return nil, err
	}
	return append([]byte(fileHeader), data...), nil
}

// LoadOrCreate loads the rule set at path, writing Defaults there first when
// the file does not exist. The bool reports whether it was created.
func LoadOrCreate(path string) (*RuleSet, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		rs := Defaults()
		if err := Regenerate(path, rs); err != nil {
			return nil, false, err
		}
		return rs, true, nil
	}

	rs, err := LoadFile(path)
	return rs, false, err
}

// Regenerate validates rs and atomically replaces the file at path with it
func Regenerate(path string, rs *RuleSet) error {
	if err := Validate(rs); err != nil {
		return err
	}

	data, err := Marshal(rs)
	if err != nil {
		return errors.WrapConfigError(path, "encode", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapConfigError(path, "create directory for", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapConfigError(path, "write", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapConfigError(path, "write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapConfigError(path, "write", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapConfigError(path, "replace", err)
	}
	return nil
}
