package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/toyz/autobind/internal/cli"
	"github.com/toyz/autobind/pkg/autobind"
	"github.com/toyz/autobind/pkg/autobind/host"
)

// PendingCmd groups the queue subcommands
type PendingCmd struct {
	List   PendingListCmd   `cmd:"" default:"1" help:"List queued owner ids."`
	Remove PendingRemoveCmd `cmd:"" help:"Drop owner ids from the queue."`
	Clear  PendingClearCmd  `cmd:"" help:"Empty the queue."`
}

func (a *App) pendingSet() *autobind.PendingSet {
	return autobind.NewPendingSet(host.NewFilePrefs(a.Config.PrefsPath()))
}

// PendingListCmd prints each queued id with the owner it resolves to
type PendingListCmd struct{}

func (c *PendingListCmd) Run(app *App) error {
	ids := app.pendingSet().List()
	if len(ids) == 0 {
		app.Diagnostics.Info("no owners are waiting to be bound")
		return nil
	}

	// scenes that fail to load only cost the class column
	var className func(string) string
	if project, err := cli.OpenProject(app.Config, nil); err == nil {
		className = func(id string) string {
			if owner := project.Directory.ResolveID(id); owner != nil {
				return owner.ClassName()
			}
			return "(missing)"
		}
	} else {
		app.Diagnostics.Verbose("scenes not loaded: %v", err)
	}

	w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
	for _, id := range ids {
		class := "?"
		if className != nil {
			class = className(id)
		}
		fmt.Fprintf(w, "%s\t%s\n", id, class)
	}
	return w.Flush()
}

// PendingRemoveCmd deletes ids, the only way to cancel a queued bind
type PendingRemoveCmd struct {
	IDs []string `arg:"" name:"id" help:"Owner ids as shown by 'pending list'."`
}

func (c *PendingRemoveCmd) Run(app *App) error {
	removed, err := app.pendingSet().Remove(c.IDs...)
	if err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	app.Diagnostics.Success("removed %d of %d id(s)", removed, len(c.IDs))
	return nil
}

// PendingClearCmd empties the queue
type PendingClearCmd struct{}

func (c *PendingClearCmd) Run(app *App) error {
	if err := app.pendingSet().Clear(); err != nil {
		app.Reporter.ReportError(err)
		return err
	}
	app.Diagnostics.Success("pending queue cleared")
	return nil
}
