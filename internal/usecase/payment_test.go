package usecase

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/qrorder/internal/adapter/ecpay"
	"github.com/polkiloo/qrorder/internal/adapter/newebpay"
	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	testhelpers "github.com/polkiloo/qrorder/internal/test"
)

const (
	testHashKey = "pwFHCqoQZGmho4w6"
	testHashIV  = "EkRm7iFT261dpevs"
)

func gatewayConfig() ecpay.Config {
	return ecpay.Config{
		MerchantID: "3002607",
		HashKey:    testHashKey,
		HashIV:     testHashIV,
		Endpoint:   "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5",
		TradeDesc:  "QR table order",
		ItemName:   "Meal",
	}
}

// world is a pending 234 order on an in-memory store.
type world struct {
	catalog
	gateway *ecpay.Gateway
	order   *model.Order
}

func newWorld(t *testing.T) world {
	t.Helper()
	c := newCatalog()
	order, err := newOrderUseCase(c).Create(context.Background(), newSession(), model.OrderRequest{
		Items:        c.exampleCart("").Items,
		DiningOption: model.DiningOptionDineIn,
		DiscountCode: "WELCOME10",
	})
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 3, 9, 12, 30, 0, 0, time.Local) }
	return world{catalog: c, gateway: ecpay.New(gatewayConfig(), ecpay.WithClock(clock)), order: order}
}

func (w world) paymentUseCase(gateways ...PaymentGateway) *PaymentUseCase {
	if len(gateways) == 0 {
		gateways = []PaymentGateway{w.gateway, newebpay.New()}
	}
	return NewPaymentUseCase(w.store.Orders(), w.store.Payments(), testhelpers.DiscardLogger(), gateways...)
}

func TestPaymentUseCaseStart(t *testing.T) {
	w := newWorld(t)
	uc := w.paymentUseCase()

	redirect, err := uc.Start(context.Background(), w.order.ID, model.PaymentMethodECPay, "https://shop.example/return")
	require.NoError(t, err)

	require.Equal(t, w.order.Number, redirect.OrderNumber)
	require.Equal(t, model.PaymentStatusPending, redirect.Payment.Status)
	require.True(t, redirect.Payment.Amount.Equal(w.order.TotalAmount))

	u, err := url.Parse(redirect.URL)
	require.NoError(t, err)
	q := u.Query()
	tradeNo := q.Get(ecpay.FieldMerchantTradeNo)
	require.NotEqual(t, w.order.Number, tradeNo)
	require.Equal(t, w.order.Number, ecpay.OrderNumber(tradeNo))
	require.Equal(t, "234", q.Get(ecpay.FieldTotalAmount))
	require.Equal(t, "2025/03/09 12:30:00", q.Get(ecpay.FieldMerchantTradeDate))

	fields := make(map[string]string, len(q))
	for k := range q {
		fields[k] = q.Get(k)
	}
	ok, err := w.gateway.Validate(fields)
	require.NoError(t, err)
	require.True(t, ok)

	payments := w.store.PaymentsOf(w.order.ID)
	require.Len(t, payments, 1)
	require.Equal(t, redirect.Payment.ID, payments[0].ID)
	require.Equal(t, model.PaymentMethodECPay, payments[0].Method)
}

func TestPaymentUseCaseStartRejects(t *testing.T) {
	w := newWorld(t)

	confirmed := newWorld(t)
	_, err := confirmed.store.Orders().Confirm(context.Background(), confirmed.order.ID)
	require.NoError(t, err)

	misconfigured := gatewayConfig()
	misconfigured.HashIV = ""

	cases := []struct {
		name    string
		w       world
		uc      *PaymentUseCase
		orderID uuid.UUID
		method  model.PaymentMethod
		ret     string
		want    error
	}{
		{name: "missing return url", w: w, uc: w.paymentUseCase(), orderID: w.order.ID, method: model.PaymentMethodECPay, want: domainErrors.ErrValidation},
		{name: "missing order id", w: w, uc: w.paymentUseCase(), method: model.PaymentMethodECPay, ret: "https://x", want: domainErrors.ErrValidation},
		{name: "unknown method", w: w, uc: w.paymentUseCase(), orderID: w.order.ID, method: "paypal", ret: "https://x", want: domainErrors.ErrUnsupportedGateway},
		{name: "newebpay stub", w: w, uc: w.paymentUseCase(), orderID: w.order.ID, method: model.PaymentMethodNewebPay, ret: "https://x", want: domainErrors.ErrUnsupportedGateway},
		{name: "unknown order", w: w, uc: w.paymentUseCase(), orderID: uuid.New(), method: model.PaymentMethodECPay, ret: "https://x", want: domainErrors.ErrNotFound},
		{name: "order already confirmed", w: confirmed, uc: confirmed.paymentUseCase(), orderID: confirmed.order.ID, method: model.PaymentMethodECPay, ret: "https://x", want: domainErrors.ErrOrderNotPayable},
		{name: "missing secret", w: w, uc: w.paymentUseCase(ecpay.New(misconfigured)), orderID: w.order.ID, method: model.PaymentMethodECPay, ret: "https://x", want: domainErrors.ErrConfiguration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.uc.Start(context.Background(), tc.orderID, tc.method, tc.ret)
			require.True(t, errors.Is(err, tc.want), "expected %v, got %v", tc.want, err)
			require.Empty(t, tc.w.store.PaymentsOf(tc.w.order.ID))
		})
	}
}

func TestPaymentUseCaseStartStoreError(t *testing.T) {
	w := newWorld(t)
	boom := errors.New("insert failed")
	w.store.FailOn["Payments.Create"] = boom

	_, err := w.paymentUseCase().Start(context.Background(), w.order.ID, model.PaymentMethodECPay, "https://x")
	require.ErrorIs(t, err, boom)
}
