package deliveryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc returns 404 for unconfigured routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
}

// ApiHandleFunctions groups the per-context API handlers.
type ApiHandleFunctions struct {
	OrdersAPI OrdersAPI
	ShiftsAPI ShiftsAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"CreateOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.OrdersAPI.CreateOrder,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/v1/orders",
			handleFunctions.OrdersAPI.ListOrders,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.OrdersAPI.GetOrder,
		},
		{
			"CancelOrder",
			http.MethodPost,
			"/v1/orders/:orderId/cancel",
			handleFunctions.OrdersAPI.CancelOrder,
		},
		{
			"UpdateOrderStatus",
			http.MethodPatch,
			"/v1/orders/:orderId/status",
			handleFunctions.OrdersAPI.UpdateOrderStatus,
		},
		{
			"ListUserOrders",
			http.MethodGet,
			"/v1/users/:userId/orders",
			handleFunctions.OrdersAPI.ListUserOrders,
		},
		{
			"StartShift",
			http.MethodPost,
			"/v1/shifts",
			handleFunctions.ShiftsAPI.StartShift,
		},
		{
			"ListShifts",
			http.MethodGet,
			"/v1/shifts",
			handleFunctions.ShiftsAPI.ListShifts,
		},
		{
			"GetShift",
			http.MethodGet,
			"/v1/shifts/:shiftId",
			handleFunctions.ShiftsAPI.GetShift,
		},
		{
			"EndShift",
			http.MethodPost,
			"/v1/shifts/:shiftId/end",
			handleFunctions.ShiftsAPI.EndShift,
		},
		{
			"CloseShift",
			http.MethodPost,
			"/v1/shifts/:shiftId/close",
			handleFunctions.ShiftsAPI.CloseShift,
		},
		{
			"ToggleShiftActive",
			http.MethodPost,
			"/v1/shifts/:shiftId/toggle-active",
			handleFunctions.ShiftsAPI.ToggleActive,
		},
		{
			"ShiftReport",
			http.MethodGet,
			"/v1/shifts/:shiftId/report",
			handleFunctions.ShiftsAPI.Report,
		},
		{
			"ListShiftOrders",
			http.MethodGet,
			"/v1/shifts/:shiftId/orders",
			handleFunctions.OrdersAPI.ListShiftOrders,
		},
	}
}
