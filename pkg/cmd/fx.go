package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		newLogger,
		fx.Annotate(indexCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(inspect, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(watch, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
