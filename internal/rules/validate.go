package rules

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/module"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/internal/utils"
	"github.com/toyz/autobind/pkg/autobind"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func ruleValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		// TypeRef fields validate through their string form
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if ref, ok := field.Interface().(autobind.TypeRef); ok {
				return ref.String()
			}
			return nil
		}, autobind.TypeRef{})

		v.RegisterValidation("packagename", func(fl validator.FieldLevel) bool {
			return utils.IsPackageName(fl.Field().String())
		})
		v.RegisterValidation("suffix", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s != "" && utils.SanitizeIdentifier(s) == s
		})
		v.RegisterValidation("importpath", func(fl validator.FieldLevel) bool {
			return module.CheckImportPath(fl.Field().String()) == nil
		})
		v.RegisterValidation("typeref", func(fl validator.FieldLevel) bool {
			return CheckTypeRef(fl.Field().String()) == nil
		})
		validate = v
	})
	return validate
}

// CheckTypeRef validates a "path.Name" reference
func CheckTypeRef(s string) error {
	ref, err := autobind.ParseTypeRef(s)
	if err != nil {
		return err
	}
	if err := module.CheckImportPath(ref.Path); err != nil {
		return err
	}
	if !utils.IsValidIdentifier(ref.Name) {
		return fmt.Errorf("'%s' is not a valid type name", ref.Name)
	}
	return nil
}

// Validate checks the rule set. A nil rule set or one without suffix rules
// is a ConfigError like any other violation.
func Validate(rs *RuleSet) error {
	if rs == nil {
		return errors.NewConfigError("no rule set loaded").
			WithSuggestion("run 'autobind config init' to create " + DefaultFile)
	}
	if len(rs.SuffixRules) == 0 {
		return errors.NewConfigError("rule set has no suffix rules").
			WithField("suffix_rules").
			WithSuggestion("add at least one suffix rule or run 'autobind config regenerate'")
	}

	err := ruleValidator().Struct(rs)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.WrapConfigError("<rule set>", "validate", err)
	}

	var fields []string
	for _, fieldErr := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", trimNamespace(fieldErr.Namespace()), fieldErr.Tag()))
	}
	first := validationErrors[0]
	configErr := errors.NewConfigError("invalid rule set: " + strings.Join(fields, ", "))
	configErr.WithCause(errors.NewValidationError(trimNamespace(first.Namespace()), first.Tag(), fmt.Sprintf("'%v'", first.Value())))
	return configErr.WithField(trimNamespace(first.Namespace()))
}

func trimNamespace(ns string) string {
	_, field, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return field
}
