package opts

import (
	"github.com/catpack/catpack/pkg/config"
	"github.com/catpack/catpack/pkg/operation"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config        *config.Config
	WorkspaceRoot string
	Notifier      operation.Notifier
}
