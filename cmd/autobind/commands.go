package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/toyz/autobind/internal/cli"
)

// ResolveCmd applies the suffix rules to the selected owners
type ResolveCmd struct{}

func (c *ResolveCmd) Run(app *App) error {
	project, refs, err := app.open()
	if err != nil {
		return err
	}

	app.Diagnostics.Section(fmt.Sprintf("Resolving %d owner(s)", len(refs)))
	pipeline := cli.NewPipeline(nil, nil, app.Diagnostics)
	result, err := pipeline.ResolveAll(cli.OwnersOf(refs), project.Rules)
	if err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	if err := project.SaveBindings(refs); err != nil {
		return err
	}

	app.Diagnostics.Summary("Resolve Complete", map[string]interface{}{
		"Owners":          len(result.Owners),
		"Manual skipped":  len(result.Skipped),
		"Fields added":    result.Total.Added,
		"Already bound":   result.Total.Skipped,
		"Unmatched nodes": result.Total.Unmatched,
	})
	if len(result.Skipped) > 0 {
		app.Diagnostics.Subsection("Manual owners (use add-components)")
		for _, class := range result.Skipped {
			app.Diagnostics.List("%s", class)
		}
	}

	if err := result.Err(); err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	return nil
}

// AddComponentsCmd binds each owner node's own components
type AddComponentsCmd struct{}

func (c *AddComponentsCmd) Run(app *App) error {
	project, refs, err := app.open()
	if err != nil {
		return err
	}

	added := cli.NewPipeline(nil, nil, app.Diagnostics).AddOwnerComponents(cli.OwnersOf(refs))
	if err := project.SaveBindings(refs); err != nil {
		return err
	}
	app.Diagnostics.Success("added %d component(s) to %d owner(s)", added, len(refs))
	return nil
}

// GenerateCmd writes code for the selected owners and queues them for binding
type GenerateCmd struct {
	Resolve bool `help:"Resolve bindings before generating."`
}

func (c *GenerateCmd) Run(app *App) error {
	project, refs, err := app.open()
	if err != nil {
		return err
	}

	owners := cli.OwnersOf(refs)
	app.Diagnostics.Section(fmt.Sprintf("Generating %d owner(s)", len(owners)))
	if c.Resolve {
		result, err := cli.NewPipeline(nil, nil, app.Diagnostics).ResolveAll(owners, project.Rules)
		if err != nil {
			app.Reporter.ReportError(err)
			return err
		}
		if err := result.Err(); err != nil {
			app.Reporter.ReportWarning(err.Error())
		}
		if err := project.SaveBindings(refs); err != nil {
			return err
		}
	}

	session, err := project.Session()
	if err != nil {
		return err
	}

	pipeline := cli.NewPipeline(app.generator(project), session.Scheduler, app.Diagnostics)
	summary, err := pipeline.GenerateAll(owners, project.Rules)
	if err != nil {
		app.Reporter.ReportError(err)
		return err
	}

	app.Reporter.ReportSuccess(summary)
	if err := summary.Err(); err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	return nil
}

// TreeCmd prints every loaded scene
type TreeCmd struct{}

func (c *TreeCmd) Run(app *App) error {
	project, _, err := app.open()
	if err != nil {
		return err
	}

	for _, doc := range project.Documents {
		if err := cli.PrintTree(app.Out, doc); err != nil {
			return err
		}
		fmt.Fprintln(app.Out)
	}
	return nil
}

// CompileCmd runs a build command with the build lock held, so a host polling
// for readiness waits until it has finished
type CompileCmd struct {
	Command []string `arg:"" optional:"" help:"Build command (default: go build ./...)."`
}

func (c *CompileCmd) Run(app *App) error {
	project, _, err := app.open()
	if err != nil {
		return err
	}
	session, err := project.Session()
	if err != nil {
		return err
	}

	command := c.Command
	if len(command) == 0 {
		command = []string{"go", "build", "./..."}
	}

	app.Diagnostics.Info("building: %s", strings.Join(command, " "))
	return session.BuildLock.Hold(func() error {
		cmd := exec.CommandContext(context.Background(), command[0], command[1:]...)
		cmd.Dir = project.Config.Root
		cmd.Stdout = app.Out
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", strings.Join(command, " "), err)
		}
		app.Diagnostics.Success("build finished")
		return nil
	})
}

// CleanCmd removes generated files below the given patterns
type CleanCmd struct {
	Patterns []string `arg:"" optional:"" help:"Directories or 'dir/...' patterns (default: ./...)."`
}

func (c *CleanCmd) Run(app *App) error {
	patterns := c.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	root := app.Config.Root
	if root == "" {
		root = "."
	}

	removed, err := cli.NewCleaner().CleanGeneratedFiles(root, patterns)
	for _, file := range removed {
		app.Diagnostics.Verbose("removed %s", file)
	}
	if err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	app.Diagnostics.Success("removed %d generated file(s)", len(removed))
	return nil
}
