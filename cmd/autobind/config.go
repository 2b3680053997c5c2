package main

import (
	"fmt"

	"github.com/toyz/autobind/internal/rules"
	"github.com/toyz/autobind/internal/utils/fileops"
)

// ConfigCmd groups the rule set subcommands
type ConfigCmd struct {
	Init       ConfigInitCmd       `cmd:"" help:"Create the rule set file with the default rules."`
	Regenerate ConfigRegenerateCmd `cmd:"" help:"Validate and rewrite the rule set file."`
	Show       ConfigShowCmd       `cmd:"" help:"Print the active rule set."`
}

// ConfigInitCmd writes the defaults unless a rule set exists
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing rule set." short:"f"`
}

func (c *ConfigInitCmd) Run(app *App) error {
	path := app.Config.RulesPath()
	if fileops.NewFileOps().Exists(path) && !c.Force {
		app.Diagnostics.Warn("%s already exists, use --force to overwrite it", path)
		return nil
	}
	if err := rules.Regenerate(path, rules.Defaults()); err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	app.Diagnostics.Success("wrote %s", path)
	return nil
}

// ConfigRegenerateCmd rewrites the rule set in canonical form, or resets it
type ConfigRegenerateCmd struct {
	Defaults bool `help:"Replace the rules with the defaults."`
}

func (c *ConfigRegenerateCmd) Run(app *App) error {
	path := app.Config.RulesPath()

	rs := rules.Defaults()
	if !c.Defaults {
		loaded, err := rules.LoadFile(path)
		if err != nil {
			app.Reporter.ReportError(err)
			return err
		}
		rs = loaded
	}

	if err := rules.Regenerate(path, rs); err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	app.Diagnostics.Success("regenerated %s", path)
	return nil
}

// ConfigShowCmd prints the rule set, creating it first when absent
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(app *App) error {
	rs, created, err := rules.LoadOrCreate(app.Config.RulesPath())
	if err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	if created {
		app.Diagnostics.Info("created %s with the default rules", app.Config.RulesPath())
	}

	data, err := rules.Marshal(rs)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(app.Out, string(data))
	return err
}
