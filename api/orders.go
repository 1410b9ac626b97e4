package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

type orderTicketRequest struct {
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight" binding:"required,gt=0"`
}

type orderRequest struct {
	Tickets []orderTicketRequest `json:"tickets" binding:"dive"`
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

// Register wires the order routes. Orders cannot be updated.
func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.delete)
}

func (h *OrderHandler) list(c *gin.Context) {
	list, err := h.service.ListOrders(c.Request.Context(), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentOrders(list))
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentOrder(*order))
}

func (h *OrderHandler) create(c *gin.Context) {
	var req orderRequest
	if !bindOptionalAuthorized(c, &req, policy.OwnerOrStaff, policy.ActionCreate) {
		return
	}

	input := orders.OrderInput{Tickets: make([]orders.TicketInput, 0, len(req.Tickets))}
	for _, t := range req.Tickets {
		input.Tickets = append(input.Tickets, orders.TicketInput{Row: t.Row, Seat: t.Seat, FlightID: t.Flight})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), identityFrom(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentOrder(*order))
}

func (h *OrderHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
