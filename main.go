package main

import (
	"github.com/alecthomas/kong"

	"github.com/lepinkainen/mediacheck/cmd"
	"github.com/lepinkainen/mediacheck/types"
)

var Version = "dev"

type CLI struct {
	Scan  cmd.ScanCmd  `cmd:"" default:"withargs" help:"Scan a directory tree for damaged media files"`
	Tools cmd.ToolsCmd `cmd:"" help:"Report external tool availability"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mediacheck"),
		kong.Description("Read-only integrity scanner for image and video files"),
	)
	err := ctx.Run(&types.AppContext{Version: Version})
	ctx.FatalIfErrorf(err)
}
