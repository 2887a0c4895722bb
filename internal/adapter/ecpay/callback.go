package ecpay

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
)

// Validate reports whether the callback carries a CheckMacValue produced with
// the merchant secrets. The only error is ErrConfiguration.
func (g *Gateway) Validate(fields map[string]string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.signer.Verify(fields), nil
}

// ParseResult extracts the payment verdict from callback fields. It does not
// check the signature. The attempt tag is stripped from MerchantTradeNo.
func (g *Gateway) ParseResult(fields map[string]string) (model.PaymentResult, error) {
	tradeNo := fields[FieldMerchantTradeNo]
	if tradeNo == "" {
		return model.PaymentResult{}, domainErrors.Validation("MerchantTradeNo is required")
	}

	result := model.PaymentResult{
		OrderNumber:   OrderNumber(tradeNo),
		Success:       fields[FieldRtnCode] == rtnCodeSuccess,
		TransactionID: fields[FieldTradeNo],
		Raw:           fields,
	}

	if raw, ok := fields[FieldTradeAmt]; ok && raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return model.PaymentResult{}, domainErrors.Validation(fmt.Sprintf("TradeAmt %q is not a number", raw))
		}
		result.Amount = &amount
	}
	return result, nil
}
