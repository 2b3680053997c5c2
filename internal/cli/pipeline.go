package cli

import (
	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/internal/generator"
	"github.com/toyz/autobind/internal/resolver"
	"github.com/toyz/autobind/internal/rules"
	"github.com/toyz/autobind/internal/utils"
	"github.com/toyz/autobind/pkg/autobind"
)

// Enqueuer persists owners so they are bound after the next rebuild.
// *autobind.Scheduler implements it.
type Enqueuer interface {
	EnqueueAll(owners []*autobind.Owner) error
}

// GenerationSummary contains information about a generate run
type GenerationSummary struct {
	OwnersProcessed int
	Generated       int
	Skipped         int // owners without valid bindings
	ManualCreated   int
	Queued          int
	GeneratedFiles  []string
	Failures        []string // class names of owners that failed
	Errors          *errors.MultipleErrors
}

// Err returns the per-owner failures, nil when there are none
func (s GenerationSummary) Err() error {
	return s.Errors.ErrOrNil()
}

// Pipeline runs the resolve and generate stages over batches of owners
type Pipeline struct {
	codeGenerator generator.CodeGenerator
	queue         Enqueuer
	diagnostics   *utils.DiagnosticSystem
}

// NewPipeline creates a pipeline. queue may be nil when nothing should be
// scheduled for binding.
func NewPipeline(codeGenerator generator.CodeGenerator, queue Enqueuer, diagnostics *utils.DiagnosticSystem) *Pipeline {
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	return &Pipeline{
		codeGenerator: codeGenerator,
		queue:         queue,
		diagnostics:   diagnostics,
	}
}

// GenerateAll writes code for every owner with valid bindings. Owner
// failures are recorded in the summary and never stop the batch; every
// owner that generated is enqueued with a single write. The returned error
// is reserved for an invalid rule set or a failed enqueue.
func (p *Pipeline) GenerateAll(owners []*autobind.Owner, rs *rules.RuleSet) (GenerationSummary, error) {
	summary := GenerationSummary{Errors: errors.NewMultipleErrors()}
	if err := rules.Validate(rs); err != nil {
		return summary, err
	}

	var generated []*autobind.Owner
	for _, owner := range owners {
		if owner == nil {
			continue
		}
		summary.OwnersProcessed++

		bindings := owner.ValidBindings()
		if len(bindings) == 0 {
			summary.Skipped++
			p.diagnostics.Verbose("skipping %s: no valid bindings", owner.ClassName())
			continue
		}

		result, err := p.codeGenerator.Generate(owner, bindings, rs)
		if err != nil {
			summary.Failures = append(summary.Failures, owner.ClassName())
			summary.Errors.Add(asBindError(err, owner))
			p.diagnostics.Warn("%v", err)
			continue
		}

		summary.Generated++
		summary.GeneratedFiles = append(summary.GeneratedFiles, result.GeneratedPath)
		if result.ManualCreated {
			summary.ManualCreated++
			summary.GeneratedFiles = append(summary.GeneratedFiles, result.ManualPath)
		}
		generated = append(generated, owner)
	}

	if len(generated) > 0 && p.queue != nil {
		if err := p.queue.EnqueueAll(generated); err != nil {
			return summary, err
		}
		summary.Queued = len(generated)
	}
	return summary, nil
}

// ResolveAll applies the naming rules to every owner and logs the outcome
func (p *Pipeline) ResolveAll(owners []*autobind.Owner, rs *rules.RuleSet) (resolver.BatchResult, error) {
	result, err := resolver.ResolveAll(owners, rs)
	if err != nil {
		return result, err
	}

	for _, owner := range result.Owners {
		if owner.Err != nil {
			p.diagnostics.Warn("%s: %v", owner.Owner.ClassName(), owner.Err)
			continue
		}
		p.diagnostics.Verbose("%s: %s", owner.Owner.ClassName(), owner.Stats)
	}
	for _, class := range result.Skipped {
		p.diagnostics.Verbose("%s: manual mode, skipped", class)
	}
	return result, nil
}

// AddOwnerComponents binds the components on each owner's own node
func (p *Pipeline) AddOwnerComponents(owners []*autobind.Owner) int {
	total := 0
	for _, owner := range owners {
		if owner == nil {
			continue
		}
		added := resolver.AddOwnerComponents(owner)
		p.diagnostics.Verbose("%s: %d component(s) added", owner.ClassName(), added)
		total += added
	}
	return total
}

func asBindError(err error, owner *autobind.Owner) errors.BindError {
	if be, ok := err.(errors.BindError); ok {
		return be
	}
	return errors.WrapGenerationError(owner.ClassName(), "generate", "", err)
}
