package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"go.uber.org/fx"

	"github.com/polkiloo/qrorder/internal/config"
	"github.com/polkiloo/qrorder/internal/domain/repository"
	pkgAuth "github.com/polkiloo/qrorder/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewPricingEngine,
		NewOrderUseCase,
		NewSettlementUseCase,
		NewNotificationUseCase,
		newSessionUseCase,
		newPaymentUseCase,
	),
	fx.Invoke(registerTableSeeding),
)

type sessionParams struct {
	fx.In

	Tables   repository.TableRepository
	Sessions repository.SessionRepository
	Hasher   pkgAuth.SecretHasher
	Config   *config.Config
	Logger   *slog.Logger
}

func newSessionUseCase(p sessionParams) *SessionUseCase {
	return NewSessionUseCase(p.Tables, p.Sessions, p.Hasher, p.Config.SessionTTL, p.Logger)
}

type paymentParams struct {
	fx.In

	Orders   repository.OrderRepository
	Payments repository.PaymentRepository
	Logger   *slog.Logger
	Gateways []PaymentGateway `group:"gateways"`
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Orders, p.Payments, p.Logger, p.Gateways...)
}

// registerTableSeeding provisions configured tables before the server starts.
func registerTableSeeding(lc fx.Lifecycle, cfg *config.Config, sessions *SessionUseCase) {
	if len(cfg.TableSeeds) == 0 {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return seedTables(ctx, sessions, cfg.TableSeeds)
		},
	})
}

func seedTables(ctx context.Context, sessions *SessionUseCase, seeds []config.TableSeed) error {
	for _, seed := range seeds {
		id, err := uuid.Parse(seed.ID)
		if err != nil {
			return fmt.Errorf("seed table %q: invalid id: %w", seed.Name, err)
		}
		if _, err := sessions.ProvisionTable(ctx, id, seed.Name, seed.QRToken); err != nil {
			return fmt.Errorf("seed table %q: %w", seed.Name, err)
		}
	}
	return nil
}
