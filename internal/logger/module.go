package logger

import "go.uber.org/fx"

// Module provides the configured service logger.
var Module = fx.Provide(New)
