// Package modules lists the feature modules the web service mounts.
package modules

import (
	module "github.com/louisbranch/authshell/internal/services/web/module"
	"github.com/louisbranch/authshell/internal/services/web/modules/assets"
	"github.com/louisbranch/authshell/internal/services/web/modules/login"
	"github.com/louisbranch/authshell/internal/services/web/modules/shell"
)

// Default returns every module in mount order.
func Default() []module.Module {
	return []module.Module{
		shell.New(),
		assets.New(),
		login.New(),
	}
}
