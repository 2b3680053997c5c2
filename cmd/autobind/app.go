package main

import (
	"io"

	"github.com/toyz/autobind/internal/cli"
	"github.com/toyz/autobind/internal/generator"
	"github.com/toyz/autobind/internal/utils"
)

// App carries what every command needs
type App struct {
	Config      cli.Config
	Diagnostics *utils.DiagnosticSystem
	Reporter    *cli.DiagnosticReporter
	Out         io.Writer
}

func newApp(c *CLI, out, errOut io.Writer) *App {
	var diagnostics *utils.DiagnosticSystem
	switch {
	case c.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case c.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	return &App{
		Config: cli.Config{
			Root:       c.Root,
			RulesFile:  c.Rules,
			Scenes:     c.Scene,
			ModuleName: c.Module,
			PrefsFile:  c.Prefs,
			Owners:     c.Owner,
			Verbose:    c.Verbose,
		},
		Diagnostics: diagnostics,
		Reporter:    cli.NewDiagnosticReporterTo(c.Verbose, out, errOut),
		Out:         out,
	}
}

// open loads the project and the owners selected by --owner
func (a *App) open() (*cli.Project, []cli.OwnerRef, error) {
	filter, err := cli.NewOwnerFilter(a.Config.Owners)
	if err != nil {
		return nil, nil, err
	}

	project, err := cli.OpenProject(a.Config, a.Diagnostics)
	if err != nil {
		a.Reporter.ReportError(err)
		return nil, nil, err
	}

	refs := project.Owners(filter)
	if len(refs) == 0 {
		a.Diagnostics.Warn("no owners found")
	}
	return project, refs, nil
}

func (a *App) generator(project *cli.Project) *generator.Generator {
	return generator.NewGenerator(project.Config.Root, cli.NewModuleResolver(project.Config.Root)).
		WithModule(a.Config.ModuleName).
		WithDiagnostics(a.Diagnostics)
}
