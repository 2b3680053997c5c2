package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/pkg/autobind"
	"github.com/toyz/autobind/pkg/autobind/widgets"
)

func TestDefaults_AreValid(t *testing.T) {
	rs := Defaults()
	require.NoError(t, Validate(rs))
	assert.Equal(t, "internal/ui", rs.OutputDir())
	assert.Equal(t, widgets.ButtonType, rs.SuffixRules[0].ComponentType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(rs *RuleSet)
		field   string
		wantErr bool
	}{
		{name: "defaults", mutate: func(rs *RuleSet) {}},
		{name: "no rules", mutate: func(rs *RuleSet) { rs.SuffixRules = nil }, field: "suffix_rules", wantErr: true},
		{name: "bad namespace", mutate: func(rs *RuleSet) { rs.Namespace = "My-UI" }, field: "namespace", wantErr: true},
		{name: "upper namespace", mutate: func(rs *RuleSet) { rs.Namespace = "UI" }, field: "namespace", wantErr: true},
		{name: "empty base path", mutate: func(rs *RuleSet) { rs.BasePath = "" }, field: "base_path", wantErr: true},
		{
			name:    "bad suffix",
			mutate:  func(rs *RuleSet) { rs.SuffixRules[0].Suffix = "Bu tton" },
			field:   "suffix_rules[0].suffix",
			wantErr: true,
		},
		{
			name:    "missing rule type",
			mutate:  func(rs *RuleSet) { rs.SuffixRules[1].ComponentType = autobind.TypeRef{} },
			field:   "suffix_rules[1].type",
			wantErr: true,
		},
		{
			name:    "bad import",
			mutate:  func(rs *RuleSet) { rs.AdditionalImports = []string{"github.com/acme/ui", "bad path/"} },
			field:   "additional_imports[1]",
			wantErr: true,
		},
		{
			name:    "bad interface",
			mutate:  func(rs *RuleSet) { rs.Interfaces = []autobind.TypeRef{{Path: "github.com/acme/ui", Name: "9View"}} },
			field:   "interfaces[0]",
			wantErr: true,
		},
		{
			name: "base type and interfaces",
			mutate: func(rs *RuleSet) {
				rs.BaseType = autobind.MustTypeRef("github.com/acme/ui/view.Base")
				rs.Interfaces = []autobind.TypeRef{autobind.MustTypeRef("github.com/acme/ui/view.Screen")}
				rs.AdditionalImports = []string{"github.com/acme/ui/theme"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := Defaults()
			tt.mutate(rs)

			err := Validate(rs)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var configErr *errors.ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestValidate_WrapsFieldDetail(t *testing.T) {
	rs := Defaults()
	rs.Namespace = "My-UI"

	err := Validate(rs)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigErrorCode))
	assert.True(t, errors.HasCode(err, errors.ValidationErrorCode))

	var validationErr *errors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "namespace", validationErr.Field)
	assert.Equal(t, "packagename", validationErr.Expected)
	assert.Equal(t, "'My-UI'", validationErr.Actual)
	assert.Contains(t, err.Error(), "expected packagename, got 'My-UI'")
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigErrorCode))
}

func TestParse_AppliesDefaults(t *testing.T) {
	rs, err := Parse([]byte(dedent.Dedent(`
		namespace: screens
		interfaces:
		  - github.com/acme/ui/view.Screen
	`)))
	require.NoError(t, err)

	assert.Equal(t, "screens", rs.Namespace)
	assert.Equal(t, DefaultBasePath, rs.BasePath)
	assert.Equal(t, DefaultSuffixRules(), rs.SuffixRules)
	assert.Equal(t, []autobind.TypeRef{{Path: "github.com/acme/ui/view", Name: "Screen"}}, rs.Interfaces)

	explicit, err := Parse([]byte("suffix_rules: []\n"))
	require.NoError(t, err)
	assert.Empty(t, explicit.SuffixRules)
	assert.Error(t, Validate(explicit))
}

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	rs, created, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Defaults(), rs)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# autobind rule set")
	assert.Contains(t, string(content), "type: github.com/toyz/autobind/pkg/autobind/widgets.Button")

	again, created, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, rs, again)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.HasCode(err, errors.ConfigErrorCode))

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("namespace: [unclosed\n"), 0o644))
	_, err = LoadFile(broken)
	assert.True(t, errors.HasCode(err, errors.ConfigErrorCode))

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("namespace: Not-A-Package\n"), 0o644))
	_, err = LoadFile(invalid)
	assert.True(t, errors.HasCode(err, errors.ConfigErrorCode))
}

func TestRegenerate_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	_, _, err := LoadOrCreate(path)
	require.NoError(t, err)

	custom := Defaults()
	custom.Namespace = "screens"
	custom.SuffixRules = append([]SuffixRule{{Suffix: "ConfirmButton", ComponentType: widgets.ToggleType}}, custom.SuffixRules...)
	require.NoError(t, Regenerate(path, custom))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)

	invalid := Defaults()
	invalid.Namespace = ""
	assert.Error(t, Regenerate(path, invalid))

	loaded, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "screens", loaded.Namespace, "a rejected rule set leaves the file untouched")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRuleSet_MatchAndClone(t *testing.T) {
	rs := Defaults()
	matched := rs.Match("SubmitButton")
	require.Len(t, matched, 1)
	assert.Equal(t, "Button", matched[0].Suffix)
	assert.Empty(t, rs.Match("Panel"))

	clone := rs.Clone()
	clone.SuffixRules[0].Suffix = "Changed"
	assert.Equal(t, "Button", rs.SuffixRules[0].Suffix)
}
