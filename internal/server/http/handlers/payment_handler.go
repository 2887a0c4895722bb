package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/adapter/ecpay"
	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/server/http/dto"
)

// PaymentHandler starts payments and receives gateway callbacks.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Create handles POST /api/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.OrderID == "" || req.PaymentMethod == "" || req.ReturnURL == "" {
		badRequest(c, "order_id, payment_method and return_url are required")
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		badRequest(c, "order_id must be a uuid")
		return
	}

	redirect, err := h.facade.StartPayment(c.Request.Context(), orderID, model.PaymentMethod(req.PaymentMethod), req.ReturnURL)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, dto.PaymentResponse{
		PaymentID:   redirect.Payment.ID.String(),
		PaymentURL:  redirect.URL,
		OrderNumber: redirect.OrderNumber,
		Amount:      redirect.Payment.Amount,
	})
}

// ECPayCallback handles POST /api/payments/ecpay/callback. The gateway reads
// only the plaintext token: rejections are acknowledged with 200 and 0|FAIL,
// while store failures answer 500 so the gateway delivers again.
func (h *PaymentHandler) ECPayCallback(c *gin.Context) {
	fields, err := callbackFields(c)
	if err != nil {
		c.String(http.StatusOK, ecpay.AckFail)
		return
	}

	if _, err := h.facade.SettleCallback(c.Request.Context(), fields); err != nil {
		if isRejection(err) {
			c.String(http.StatusOK, ecpay.AckFail)
			return
		}
		c.String(http.StatusInternalServerError, ecpay.AckFail)
		return
	}

	c.String(http.StatusOK, ecpay.AckOK)
}

func isRejection(err error) bool {
	return errors.Is(err, domainErrors.ErrInvalidSignature) ||
		errors.Is(err, domainErrors.ErrAmountMismatch) ||
		errors.Is(err, domainErrors.ErrNotFound) ||
		errors.Is(err, domainErrors.ErrValidation)
}

// callbackFields reads a form-encoded or JSON callback into a flat field map.
// Only the first value of a repeated form field is used.
func callbackFields(c *gin.Context) (map[string]string, error) {
	if c.ContentType() == gin.MIMEJSON {
		return jsonFields(c)
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	if len(fields) == 0 {
		return nil, errors.New("empty callback")
	}
	return fields, nil
}

func jsonFields(c *gin.Context) (map[string]string, error) {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty callback")
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		default:
			return nil, fmt.Errorf("field %s is not a scalar", key)
		}
	}
	return fields, nil
}
