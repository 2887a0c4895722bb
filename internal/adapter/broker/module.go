package broker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/qrorder/internal/config"
)

// Module provides the notification publisher.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

func newPublisher(cfg *config.Config, logger *slog.Logger) (Publisher, error) {
	if cfg.RabbitMQURL == "" {
		logger.Info("rabbitmq not configured, notifications are logged only")
		return NewLogPublisher(logger), nil
	}
	return Dial(cfg.RabbitMQURL, logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
}
