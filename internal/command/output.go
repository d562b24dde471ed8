// Where: cli/internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction.
package command

import (
	"io"

	"github.com/poruru/npm-deploy/cli/internal/infra/ui"
)

func legacyUI(out io.Writer) ui.UserInterface {
	return ui.NewDeployUI(out, false)
}
