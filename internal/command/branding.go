// Where: cli/internal/command/branding.go
// What: Configurable CLI name for user-facing hints.
// Why: Wrappers (npx scripts, nx executors) invoke the binary under other names.
package command

import (
	"github.com/poruru/npm-deploy/cli/internal/infra/envutil"
	"github.com/poruru/npm-deploy/cli/internal/meta"
)

func cliName() string {
	if name := envutil.GetHostEnv("CLI_NAME"); name != "" {
		return name
	}
	return meta.AppName
}
