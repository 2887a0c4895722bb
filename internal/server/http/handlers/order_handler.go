package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		badRequest(c, "order must contain at least one item")
		return
	}

	orderReq, err := toOrderRequest(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentSession(c), orderReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, toOrderResponse(order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "order id must be a uuid")
		return
	}

	order, err := h.facade.SessionOrder(c.Request.Context(), CurrentSession(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, toOrderResponse(order))
}

func toOrderRequest(req dto.CreateOrderRequest) (model.OrderRequest, error) {
	items := make([]model.CartItem, 0, len(req.Items))
	for i, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return model.OrderRequest{}, fmt.Errorf("item %d: product_id must be a uuid", i)
		}
		modifiers := make([]model.Modifier, 0, len(item.Modifiers))
		for _, m := range item.Modifiers {
			modifiers = append(modifiers, model.Modifier{ID: m.ID, Name: m.Name, Price: m.Price})
		}
		items = append(items, model.CartItem{ProductID: productID, Quantity: item.Quantity, Modifiers: modifiers})
	}
	return model.OrderRequest{
		Items:        items,
		DiningOption: model.DiningOption(req.DiningOption),
		Note:         req.Note,
		DiscountCode: req.DiscountCode,
	}, nil
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		var modifiers []dto.ModifierResponse
		for _, m := range item.Modifiers {
			modifiers = append(modifiers, dto.ModifierResponse{ID: m.ID, Name: m.Name, Price: m.Price})
		}
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Modifiers:   modifiers,
			Subtotal:    item.Subtotal,
		})
	}
	return dto.OrderResponse{
		OrderID:        order.ID.String(),
		OrderNumber:    order.Number,
		Status:         string(order.Status),
		Items:          items,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		DiscountCode:   order.DiscountCode,
		DiningOption:   string(order.DiningOption),
		Note:           order.Note,
		CreatedAt:      order.CreatedAt,
	}
}
