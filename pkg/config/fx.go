package config

import "go.uber.org/fx"

// Loader resolves the configuration when called.
type Loader func() (*Config, error)

// Module provides a Loader rather than a Config so commands resolve the
// configuration after the working directory has been changed to --dir.
var Module = fx.Module("config", fx.Provide(
	func() Loader { return Load },
))
