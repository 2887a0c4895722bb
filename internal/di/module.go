package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/qrorder/internal/adapter/broker"
	"github.com/polkiloo/qrorder/internal/adapter/ecpay"
	"github.com/polkiloo/qrorder/internal/adapter/newebpay"
	"github.com/polkiloo/qrorder/internal/app"
	"github.com/polkiloo/qrorder/internal/config"
	"github.com/polkiloo/qrorder/internal/logger"
	"github.com/polkiloo/qrorder/internal/pkg/auth"
	"github.com/polkiloo/qrorder/internal/server/http/handlers"
	"github.com/polkiloo/qrorder/internal/server/http/router"
	"github.com/polkiloo/qrorder/internal/storage/postgres"
	"github.com/polkiloo/qrorder/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		broker.Module,
		ecpay.Module,
		usecase.Module,
		fx.Provide(
			fx.Annotate(
				func(g *ecpay.Gateway) usecase.PaymentGateway { return g },
				fx.ResultTags(`group:"gateways"`),
			),
			fx.Annotate(
				func() usecase.PaymentGateway { return newebpay.New() },
				fx.ResultTags(`group:"gateways"`),
			),
			func(g *ecpay.Gateway) usecase.CallbackVerifier { return g },
			func(p broker.Publisher) usecase.NotificationPublisher { return p },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.OrderingFacade) handlers.OrderingFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
