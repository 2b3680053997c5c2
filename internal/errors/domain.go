package errors

import "fmt"

// ConfigError reports a missing or invalid rule set. It is fatal to the
// operation that hit it and is raised before any partial effect.
type ConfigError struct {
	*BaseError
	Field string
}

// NewConfigError creates a configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{BaseError: New(ConfigErrorCode, message)}
}

// WrapConfigError wraps a load/parse/validate failure of the rule set file
func WrapConfigError(path, operation string, cause error) *ConfigError {
	message := fmt.Sprintf("failed to %s rule set '%s'", operation, path)
	return &ConfigError{
		BaseError: Wrap(ConfigErrorCode, message, cause).
			WithContext("path", path).
			WithContext("operation", operation),
	}
}

// WithField records which rule set field is at fault
func (e *ConfigError) WithField(field string) *ConfigError {
	e.Field = field
	e.BaseError.WithContext("field", field)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *ConfigError) WithSuggestion(suggestion string) *ConfigError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// GenerationError aborts code generation for one owner.
type GenerationError struct {
	*BaseError
	Owner      string // class name of the owner being generated
	TargetFile string // file being written, if known
	Stage      string // validate, render, format, write
}

// NewGenerationError creates a generation error for an owner
func NewGenerationError(owner, stage, message string) *GenerationError {
	return &GenerationError{
		BaseError: New(GenerationErrorCode, fmt.Sprintf("generate %s: %s", owner, message)).
			WithContext("owner", owner).
			WithContext("stage", stage),
		Owner: owner,
		Stage: stage,
	}
}

// WrapGenerationError wraps a lower level failure while generating an owner
func WrapGenerationError(owner, stage, targetFile string, cause error) *GenerationError {
	message := fmt.Sprintf("generate %s: %s failed", owner, stage)
	if targetFile != "" {
		message = fmt.Sprintf("generate %s: %s '%s' failed", owner, stage, targetFile)
	}
	e := &GenerationError{
		BaseError: Wrap(GenerationErrorCode, message, cause).
			WithContext("owner", owner).
			WithContext("stage", stage),
		Owner: owner,
		Stage: stage,
	}
	if targetFile != "" {
		e.WithTargetFile(targetFile)
	}
	return e
}

// WithTargetFile sets the file being generated
func (e *GenerationError) WithTargetFile(targetFile string) *GenerationError {
	e.TargetFile = targetFile
	e.BaseError.WithContext("target_file", targetFile)
	return e
}

// BindingFailure is a per-entry, non-fatal binding problem.
type BindingFailure struct {
	*BaseError
	Owner string
	Field string
}

// NewBindingFailure creates a binding failure for one field of an owner
func NewBindingFailure(owner, field, detail string) *BindingFailure {
	message := fmt.Sprintf("%s: %s", owner, detail)
	if field != "" {
		message = fmt.Sprintf("%s.%s: %s", owner, field, detail)
	}
	return &BindingFailure{
		BaseError: New(BindingFailureCode, message),
		Owner:     owner,
		Field:     field,
	}
}

// ReadinessTimeout is reported when the scheduler gives up waiting for the host.
type ReadinessTimeout struct {
	*BaseError
	Owner    string
	Attempts int
}

// NewReadinessTimeout creates a readiness timeout for an owner
func NewReadinessTimeout(owner string, attempts int) *ReadinessTimeout {
	err := &ReadinessTimeout{
		BaseError: New(ReadinessTimeoutCode, fmt.Sprintf("host still busy after %d attempts, '%s' was not bound", attempts, owner)),
		Owner:     owner,
		Attempts:  attempts,
	}
	err.BaseError.WithSuggestion("run the bind step again once the rebuild has finished")
	return err
}

// SyntaxError represents a scene description parsing error
type SyntaxError struct {
	*BaseError
	Token string
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string, loc SourceLocation) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message).WithLocation(loc),
	}
}

// WithToken sets the problematic token
func (e *SyntaxError) WithToken(token string) *SyntaxError {
	e.Token = token
	return e
}

// ValidationError represents a field that failed validation
type ValidationError struct {
	*BaseError
	Field    string
	Expected string
	Actual   string
}

// NewValidationError creates a new validation error
func NewValidationError(field, expected, actual string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': expected %s, got %s", field, expected, actual)

	return &ValidationError{
		BaseError: New(ValidationErrorCode, message),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}
