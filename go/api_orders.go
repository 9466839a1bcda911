package deliveryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderhttpmapper "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	ordersdomain "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	ordersports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
	apierrors "github.com/shamskitchen/go-gin-delivery-server/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the orders bounded context service.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Post /v1/orders
// Place a new order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateOrder(c.Request.Context(), orderhttpmapper.ToCreateInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromProjection(created))
}

// Get /v1/orders/:orderId
// Load one order with its items
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	projection, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjection(projection))
}

// Get /v1/orders
// List recent orders
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	skip, limit, ok := parsePageQuery(c)
	if !ok {
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), orderstypes.PageInput{Skip: skip, Limit: limit})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
}

// cancelOrderRequest carries the cancelling customer's identity.
type cancelOrderRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// Post /v1/orders/:orderId/cancel
// Customer-initiated cancellation
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload cancelOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), orderstypes.CancelOrderInput{
		UserID:  payload.UserID,
		OrderID: id,
	})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Patch /v1/orders/:orderId/status
// Administrative status update
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderhttpmapper.UpdateStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	status, err := ordersdomain.ParseStatus(payload.Status)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	order, err := api.service.UpdateOrderStatus(c.Request.Context(), orderstypes.UpdateStatusInput{
		OrderID: id,
		Status:  status,
	})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /v1/users/:userId/orders
// List a customer's orders; ?active=true narrows to in-flight orders and
// ?status=<status> filters by one status.
func (api *OrdersAPI) ListUserOrders(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("userId must be a UUID"))
		return
	}
	ctx := c.Request.Context()

	if c.Query("active") == "true" {
		orders, err := api.service.ListUserActiveOrders(ctx, userID)
		if err != nil {
			respondOrderServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
		return
	}

	skip, limit, ok := parsePageQuery(c)
	if !ok {
		return
	}
	page := orderstypes.PageInput{Skip: skip, Limit: limit}

	if status := c.Query("status"); status != "" {
		orders, err := api.service.ListUserOrdersByStatus(ctx, userID, ordersdomain.Status(status), page)
		if err != nil {
			respondOrderServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
		return
	}

	orders, err := api.service.ListUserOrders(ctx, userID, page)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
}

// Get /v1/shifts/:shiftId/orders
// List every order placed during a shift
func (api *OrdersAPI) ListShiftOrders(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "shiftId")
	if !ok {
		return
	}
	skip, limit, ok := parsePageQuery(c)
	if !ok {
		return
	}
	orders, err := api.service.ListShiftOrders(c.Request.Context(), shiftID, orderstypes.PageInput{Skip: skip, Limit: limit})
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
}
