package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/qrorder/internal/app"
	"github.com/polkiloo/qrorder/internal/config"
	"github.com/polkiloo/qrorder/internal/domain/repository"
	"github.com/polkiloo/qrorder/internal/storage/postgres"
	"github.com/polkiloo/qrorder/internal/test"
	"github.com/polkiloo/qrorder/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		Environment:        config.EnvStaging,
		ECPayMerchantID:    "3002607",
		ECPayHashKey:       "pwFHCqoQZGmho4w6",
		ECPayHashIV:        "EkRm7iFT261dpevs",
		ECPayStagingURL:    "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5",
		SessionTTL:         time.Hour,
		NotifyPollInterval: time.Millisecond,
		NotifyBatchSize:    1,
		NotifyWorkers:      1,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewMemoryStore()

	var (
		facade   *app.OrderingFacade
		payments *usecase.PaymentUseCase
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.Transactor)))),
			fx.Replace(fx.Annotate(store.Products(), fx.As(new(repository.ProductRepository)))),
			fx.Replace(fx.Annotate(store.Tables(), fx.As(new(repository.TableRepository)))),
			fx.Replace(fx.Annotate(store.Sessions(), fx.As(new(repository.SessionRepository)))),
			fx.Replace(fx.Annotate(store.Orders(), fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(store.Payments(), fx.As(new(repository.PaymentRepository)))),
			fx.Replace(fx.Annotate(store.Notifications(), fx.As(new(repository.NotificationRepository)))),
		),
		fx.Populate(&facade, &payments),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected ordering facade instance")
	}
	if payments == nil {
		t.Fatal("expected payment use case instance")
	}
}
