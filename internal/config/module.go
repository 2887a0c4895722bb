package config

import "go.uber.org/fx"

// Module loads the service configuration once per fx graph.
var Module = fx.Provide(Load)
