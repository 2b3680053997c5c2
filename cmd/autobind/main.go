package main

import (
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the root command: global flags plus one field per subcommand
type CLI struct {
	Root    string   `help:"Project root." default:"." type:"path"`
	Rules   string   `help:"Rule set file, relative to the root." default:"autobind.yaml"`
	Scene   []string `help:"Scene files, directories or 'dir/...' patterns." default:"./..." sep:","`
	Module  string   `help:"Module path for imports (defaults to go.mod)."`
	Prefs   string   `help:"Pending queue file (defaults to <root>/.autobind/prefs.yaml)."`
	Owner   []string `help:"Only owners matching these globs: node path, class=GLOB or scene=GLOB, '!' excludes." sep:","`
	Verbose bool     `help:"Enable verbose output and detailed error reporting." short:"v"`
	Quiet   bool     `help:"Only show errors and final results." short:"q"`

	Resolve       ResolveCmd       `cmd:"" help:"Bind child nodes to owner fields by name suffix."`
	AddComponents AddComponentsCmd `cmd:"" name:"add-components" help:"Bind the components on each owner's own node."`
	Generate      GenerateCmd      `cmd:"" help:"Write the bound fields of each owner as Go code."`
	Tree          TreeCmd          `cmd:"" help:"Print scene trees with owners and bound fields."`
	Pending       PendingCmd       `cmd:"" help:"Inspect the queue of owners waiting to be bound."`
	Config        ConfigCmd        `cmd:"" help:"Manage the rule set file."`
	Compile       CompileCmd       `cmd:"" help:"Run the build while holding the build lock."`
	Clean         CleanCmd         `cmd:"" help:"Delete generated *_autobind.go files."`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("autobind"),
		kong.Description("Scene binding code generator"),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	cli := new(CLI)
	parser, err := newParser(cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(newApp(cli, os.Stdout, os.Stderr))
	ctx.FatalIfErrorf(err)
}
