package autobind

import (
	"fmt"

	"github.com/toyz/autobind/internal/errors"
)

// BindingResult summarizes a batch bind
type BindingResult struct {
	SuccessCount int
	FailureCount int
	FailureList  []string // class names of owners that did not bind cleanly
	Errors       []error
}

// OK reports whether every owner bound cleanly
func (r BindingResult) OK() bool {
	return r.FailureCount == 0
}

// Err folds the per-owner errors into one, nil when there are none
func (r BindingResult) Err() error {
	multi := errors.NewMultipleErrors()
	for _, err := range r.Errors {
		if be, ok := err.(errors.BindError); ok {
			multi.Add(be)
			continue
		}
		multi.Add(errors.Wrap(errors.BindingFailureCode, "bind failed", err))
	}
	return multi.ErrOrNil()
}

// Binder attaches resolved components to the fields of generated types
// through their FieldTable
type Binder struct {
	registry *Registry
	logger   Logger
}

// NewBinder creates a binder. A nil registry means DefaultRegistry, a nil
// logger discards output.
func NewBinder(registry *Registry, logger Logger) *Binder {
	if registry == nil {
		registry = DefaultRegistry
	}
	if logger == nil {
		logger = NopLogger
	}
	return &Binder{registry: registry, logger: logger}
}

// Instance returns the generated component attached to the owner node,
// creating and attaching one from the registry when there is none
func (b *Binder) Instance(owner *Owner) (Bindable, error) {
	if existing := b.attached(owner); existing != nil {
		return existing, nil
	}

	factory, err := b.registry.LookupClass(owner.ClassName())
	if err != nil {
		return nil, err
	}

	mutable, ok := owner.Node().(MutableNode)
	if !ok {
		return nil, fmt.Errorf("node '%s' cannot carry new components", owner.Node().Name())
	}

	instance := factory()
	mutable.AddComponent(instance)
	b.logger.Debug("attached new %s to '%s'", instance.ComponentType(), owner.Node().Name())
	return instance, nil
}

func (b *Binder) attached(owner *Owner) Bindable {
	class := owner.ClassName()
	for _, c := range owner.Node().Components() {
		if bindable, ok := c.(Bindable); ok && bindable.ComponentType().Name == class {
			return bindable
		}
	}
	return nil
}

// BindOne sets every generated field of owner. Entry failures are recorded
// and never stop the remaining entries.
func (b *Binder) BindOne(owner *Owner) bool {
	report, err := b.bind(owner)
	if err != nil {
		b.logger.Warn("%v", err)
	}
	return report.OK()
}

// Bind is BindOne returning the full report and the entry failures
func (b *Binder) Bind(owner *Owner) (ValidationReport, error) {
	return b.bind(owner)
}

func (b *Binder) bind(owner *Owner) (ValidationReport, error) {
	class := owner.ClassName()
	report := ValidationReport{Owner: class}
	failures := errors.NewMultipleErrors()

	instance, err := b.Instance(owner)
	if err != nil {
		for _, entry := range owner.Bindings {
			report.add(entry.FieldName, StatusMissing, "%v", err)
			failures.Add(errors.NewBindingFailure(class, entry.FieldName, err.Error()))
		}
		return report, failures.ErrOrNil()
	}

	fields := instance.AutobindFields()
	for _, entry := range owner.Bindings {
		status, detail := classify(fields, entry)
		if status == StatusOK {
			setter, _ := fields.Lookup(entry.FieldName)
			if setter.Set == nil || !setter.Set(entry.Target) {
				status, detail = StatusTypeMismatch, fmt.Sprintf("%s rejected %s", setter.Type, entry.Target.ComponentType())
			}
		}

		report.add(entry.FieldName, status, "%s", detail)
		if status != StatusOK {
			failures.Add(errors.NewBindingFailure(class, entry.FieldName, detail))
		}
	}

	if report.OK() {
		b.logger.Debug("bound %d field(s) on %s", len(report.Entries), class)
		if notifier, ok := instance.(BoundNotifier); ok {
			notifier.OnBound()
		}
	}
	return report, failures.ErrOrNil()
}

// BindMany binds every owner. An owner failure never stops the batch.
func (b *Binder) BindMany(owners []*Owner) BindingResult {
	var result BindingResult
	for _, owner := range owners {
		if owner == nil {
			continue
		}
		report, err := b.bind(owner)
		if report.OK() {
			result.SuccessCount++
			continue
		}

		result.FailureCount++
		result.FailureList = append(result.FailureList, owner.ClassName())
		if err == nil {
			err = errors.NewBindingFailure(owner.ClassName(), "", "binding failed")
		}
		result.Errors = append(result.Errors, err)
	}
	return result
}

// ValidateBinding classifies every entry without assigning anything. When
// no generated instance is attached, a detached one is used to read its
// field table.
func (b *Binder) ValidateBinding(owner *Owner) ValidationReport {
	report := ValidationReport{Owner: owner.ClassName()}

	fields, err := b.fieldTable(owner)
	if err != nil {
		for _, entry := range owner.Bindings {
			report.add(entry.FieldName, StatusMissing, "%v", err)
		}
		return report
	}

	for _, entry := range owner.Bindings {
		status, detail := classify(fields, entry)
		report.add(entry.FieldName, status, "%s", detail)
	}
	return report
}

// GenerateReport renders report as text
func (b *Binder) GenerateReport(report ValidationReport) string {
	return GenerateReport(report)
}

func (b *Binder) fieldTable(owner *Owner) (FieldTable, error) {
	if existing := b.attached(owner); existing != nil {
		return existing.AutobindFields(), nil
	}
	factory, err := b.registry.LookupClass(owner.ClassName())
	if err != nil {
		return nil, err
	}
	return factory().AutobindFields(), nil
}

func classify(fields FieldTable, entry BindingEntry) (Status, string) {
	setter, ok := fields.Lookup(entry.FieldName)
	if !ok {
		return StatusMissing, "no generated field"
	}
	if entry.Target == nil {
		if entry.Path != "" {
			return StatusMissing, fmt.Sprintf("no component at '%s'", entry.Path)
		}
		return StatusMissing, "no component assigned"
	}
	if setter.Accepts != nil && !setter.Accepts(entry.Target) {
		return StatusTypeMismatch, fmt.Sprintf("field is %s, component is %s", setter.Type, entry.Target.ComponentType())
	}
	return StatusOK, entry.Target.ComponentType().String()
}
