package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogsmith/cmd/blogsmith/commands"
	"git.home.luguber.info/inful/blogsmith/internal/version"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("blogsmith"),
		kong.Description("Static blog site generator: Markdown posts in, themed HTML site out."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("blogsmith %s (commit %s, built %s)",
				version.Version, version.GitCommit, version.BuildTime),
		},
	)

	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
