package rules

import (
	"fmt"
	"strings"

	"github.com/toyz/autobind/pkg/autobind"
	"github.com/toyz/autobind/pkg/autobind/widgets"
)

const (
	// DefaultFile is the rule set file name at the project root
	DefaultFile = "autobind.yaml"

	DefaultNamespace = "ui"
	DefaultBasePath  = "internal"
)

// SuffixRule maps a node name suffix to the component type bound for it
type SuffixRule struct {
	Suffix        string           `yaml:"suffix" validate:"required,suffix"`
	ComponentType autobind.TypeRef `yaml:"type" validate:"required,typeref"`
}

// Matches reports whether name ends with the rule suffix
func (r SuffixRule) Matches(name string) bool {
	return r.Suffix != "" && strings.HasSuffix(name, r.Suffix)
}

// String returns "Suffix -> Type"
func (r SuffixRule) String() string {
	return fmt.Sprintf("%s -> %s", r.Suffix, r.ComponentType)
}

// RuleSet holds the naming rules and generation options of a project. It is
// loaded once and passed explicitly to every pipeline call.
type RuleSet struct {
	// Namespace is the package name of generated code
	Namespace string `yaml:"namespace" validate:"required,packagename"`

	// BasePath is the directory, relative to the project root, that holds
	// the Namespace package directory
	BasePath string `yaml:"base_path" validate:"required"`

	// BaseType is embedded in every generated struct when set
	BaseType autobind.TypeRef `yaml:"base_type,omitempty" validate:"omitempty,typeref"`

	// Interfaces are asserted for every generated type
	Interfaces []autobind.TypeRef `yaml:"interfaces,omitempty" validate:"dive,typeref"`

	// AdditionalImports are blank imported by every generated file
	AdditionalImports []string `yaml:"additional_imports,omitempty" validate:"dive,required,importpath"`

	// SuffixRules are evaluated top to bottom; the first match wins
	SuffixRules []SuffixRule `yaml:"suffix_rules" validate:"required,min=1,dive"`
}

// DefaultSuffixRules binds the stock widgets. Longer suffixes come first so
// they win over the shorter ones they end with.
func DefaultSuffixRules() []SuffixRule {
	return []SuffixRule{
		{Suffix: "Button", ComponentType: widgets.ButtonType},
		{Suffix: "Btn", ComponentType: widgets.ButtonType},
		{Suffix: "Label", ComponentType: widgets.TextType},
		{Suffix: "Text", ComponentType: widgets.TextType},
		{Suffix: "Image", ComponentType: widgets.ImageType},
		{Suffix: "Img", ComponentType: widgets.ImageType},
		{Suffix: "Toggle", ComponentType: widgets.ToggleType},
		{Suffix: "Slider", ComponentType: widgets.SliderType},
		{Suffix: "ScrollRect", ComponentType: widgets.ScrollRectType},
		{Suffix: "ScrollView", ComponentType: widgets.ScrollRectType},
		{Suffix: "InputField", ComponentType: widgets.InputFieldType},
		{Suffix: "Input", ComponentType: widgets.InputFieldType},
	}
}

// Defaults returns the rule set written on first use
func Defaults() *RuleSet {
	return &RuleSet{
		Namespace:   DefaultNamespace,
		BasePath:    DefaultBasePath,
		SuffixRules: DefaultSuffixRules(),
	}
}

// Clone returns a deep copy
func (rs *RuleSet) Clone() *RuleSet {
	clone := *rs
	clone.Interfaces = append([]autobind.TypeRef(nil), rs.Interfaces...)
	clone.AdditionalImports = append([]string(nil), rs.AdditionalImports...)
	clone.SuffixRules = append([]SuffixRule(nil), rs.SuffixRules...)
	return &clone
}

// OutputDir returns BasePath/Namespace
func (rs *RuleSet) OutputDir() string {
	return strings.TrimSuffix(rs.BasePath, "/") + "/" + rs.Namespace
}

// Match returns the rules whose suffix matches name, in order
func (rs *RuleSet) Match(name string) []SuffixRule {
	var matched []SuffixRule
	for _, rule := range rs.SuffixRules {
		if rule.Matches(name) {
			matched = append(matched, rule)
		}
	}
	return matched
}
