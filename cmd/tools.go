package cmd

import (
	"fmt"

	"github.com/lepinkainen/mediacheck/probe"
	"github.com/lepinkainen/mediacheck/types"
	"github.com/lepinkainen/mediacheck/ui"
	"github.com/lepinkainen/mediacheck/utils"
)

// ToolsCmd prints which external verification tools are reachable, without
// starting a scan. It exits nonzero when any tool is missing, so scripts can
// preflight an environment before kicking off a long scan.
type ToolsCmd struct{}

// Run executes the tools command.
func (cmd *ToolsCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("MediaCheck %s", version)))

	printToolReport(probe.DetectTools())
	return utils.ValidateScannerDependencies()
}
