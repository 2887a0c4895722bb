package ecpay

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
)

// Config is the immutable merchant setup the gateway is built with.
type Config struct {
	MerchantID string
	HashKey    string
	HashIV     string
	// Endpoint is the AioCheckOut URL of the selected environment.
	Endpoint string
	// ReturnURL is the server-to-server callback address. When empty the
	// client supplied return URL is used instead.
	ReturnURL string
	TradeDesc string
	ItemName  string
}

// Gateway builds signed checkout redirects and validates result callbacks.
// Both directions go through the same Signer.
type Gateway struct {
	cfg    Config
	signer *Signer
	err    error
	now    func() time.Time
	tag    func() string
}

// Option customizes Gateway.
type Option func(*Gateway)

// WithClock overrides the clock used for MerchantTradeDate.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

// WithAttemptTag overrides the generator of the per-attempt MerchantTradeNo suffix.
func WithAttemptTag(tag func() string) Option {
	return func(g *Gateway) {
		g.tag = tag
	}
}

// New creates Gateway. Missing credentials do not fail construction; every
// operation that needs them reports ErrConfiguration instead.
func New(cfg Config, opts ...Option) *Gateway {
	g := &Gateway{cfg: cfg, now: time.Now, tag: randomAttemptTag}
	for _, opt := range opts {
		opt(g)
	}

	switch {
	case cfg.MerchantID == "":
		g.err = fmt.Errorf("%w: merchant id must be set", domainErrors.ErrConfiguration)
	case cfg.Endpoint == "":
		g.err = fmt.Errorf("%w: checkout endpoint must be set", domainErrors.ErrConfiguration)
	default:
		g.signer, g.err = NewSigner(cfg.HashKey, cfg.HashIV)
	}
	return g
}

// Method reports the payment method tag served by the gateway.
func (g *Gateway) Method() model.PaymentMethod {
	return model.PaymentMethodECPay
}

// PaymentURL returns the checkout URL for order with every field and the
// CheckMacValue encoded as query parameters.
func (g *Gateway) PaymentURL(order *model.Order, clientReturnURL string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if order == nil || order.Number == "" {
		return "", domainErrors.Validation("order number is required")
	}

	tradeNo := TradeNumber(order.Number, g.tag())
	if len(tradeNo) > maxTradeNoLen {
		return "", domainErrors.Validation(fmt.Sprintf("order number %q leaves no room for the attempt suffix", order.Number))
	}

	fields, err := g.requestFields(order, tradeNo, clientReturnURL)
	if err != nil {
		return "", err
	}
	fields[FieldCheckMacValue] = g.signer.CheckMacValue(fields)

	query := make(url.Values, len(fields))
	for k, v := range fields {
		query.Set(k, v)
	}
	return g.cfg.Endpoint + "?" + query.Encode(), nil
}

func (g *Gateway) requestFields(order *model.Order, tradeNo, clientReturnURL string) (map[string]string, error) {
	returnURL := g.cfg.ReturnURL
	if returnURL == "" {
		returnURL = clientReturnURL
	}
	if returnURL == "" {
		return nil, domainErrors.Validation("return url is required")
	}

	fields := map[string]string{
		FieldMerchantID:        g.cfg.MerchantID,
		FieldMerchantTradeNo:   tradeNo,
		FieldMerchantTradeDate: g.now().Format(tradeDateLayout),
		FieldPaymentType:       paymentTypeAIO,
		FieldTotalAmount:       strconv.FormatInt(order.TotalAmount.Floor().IntPart(), 10),
		FieldTradeDesc:         g.cfg.TradeDesc,
		FieldItemName:          g.cfg.ItemName,
		FieldReturnURL:         returnURL,
		FieldChoosePayment:     choosePaymentAll,
		FieldEncryptType:       encryptSHA256,
	}
	if g.cfg.ReturnURL != "" && clientReturnURL != "" {
		fields[FieldClientBackURL] = clientReturnURL
	}
	return fields, nil
}

// ECPay refuses a MerchantTradeNo it has seen before, so every checkout
// attempt carries "T" plus a four character tag after the order number.
const (
	maxTradeNoLen  = 20
	attemptMarker  = 'T'
	attemptTagLen  = 4
	attemptTagSize = attemptTagLen + 1
	tagAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// TradeNumber appends the attempt tag to orderNumber.
func TradeNumber(orderNumber, tag string) string {
	return orderNumber + string(attemptMarker) + tag
}

// OrderNumber strips the attempt tag from a MerchantTradeNo. Numbers without
// a tag are returned unchanged.
func OrderNumber(tradeNo string) string {
	cut := len(tradeNo) - attemptTagSize
	if cut <= 0 || tradeNo[cut] != attemptMarker {
		return tradeNo
	}
	for _, r := range tradeNo[cut+1:] {
		if !strings.ContainsRune(tagAlphabet, r) {
			return tradeNo
		}
	}
	return tradeNo[:cut]
}

func randomAttemptTag() string {
	var b [attemptTagLen]byte
	for i := range b {
		b[i] = tagAlphabet[rand.IntN(len(tagAlphabet))]
	}
	return string(b[:])
}
