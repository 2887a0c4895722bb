package router

import "go.uber.org/fx"

// Module provides the ordering API engine.
var Module = fx.Provide(Setup)
