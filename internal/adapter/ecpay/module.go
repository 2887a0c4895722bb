package ecpay

import (
	"go.uber.org/fx"

	"github.com/polkiloo/qrorder/internal/config"
)

// Module exposes the ECPay gateway to fx graph.
var Module = fx.Provide(newGateway)

func newGateway(cfg *config.Config) *Gateway {
	return New(Config{
		MerchantID: cfg.ECPayMerchantID,
		HashKey:    cfg.ECPayHashKey,
		HashIV:     cfg.ECPayHashIV,
		Endpoint:   cfg.ECPayEndpoint(),
		ReturnURL:  cfg.ECPayReturnURL,
		TradeDesc:  cfg.ECPayTradeDesc,
		ItemName:   cfg.ECPayItemName,
	})
}
