package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service orders.TicketUseCase
}

type ticketRequest struct {
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight" binding:"required,gt=0"`
	Order  int64 `json:"order" binding:"required,gt=0"`
}

type ticketPatchRequest struct {
	Row    *int   `json:"row"`
	Seat   *int   `json:"seat"`
	Flight *int64 `json:"flight" binding:"omitempty,gt=0"`
	Order  *int64 `json:"order" binding:"omitempty,gt=0"`
}

func NewTicketHandler(service orders.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *TicketHandler) list(c *gin.Context) {
	verr := &domain.ValidationError{}
	filter := domain.TicketFilter{
		FlightID: queryID(c, "flight", verr),
		OrderID:  queryID(c, "order", verr),
	}
	if rejectFilter(c, policy.AuthenticatedCreateStaffFull, verr) {
		return
	}

	tickets, err := h.service.ListTickets(c.Request.Context(), identityFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentTicketList(tickets))
}

func (h *TicketHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ticket, err := h.service.GetTicket(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentTicket(*ticket))
}

func (h *TicketHandler) create(c *gin.Context) {
	var req ticketRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedCreateStaffFull, policy.ActionCreate) {
		return
	}
	ticket, err := h.service.CreateTicket(c.Request.Context(), identityFrom(c), orders.TicketCreateInput{
		Row:      req.Row,
		Seat:     req.Seat,
		FlightID: req.Flight,
		OrderID:  req.Order,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentTicket(*ticket))
}

func (h *TicketHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ticketRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedCreateStaffFull, policy.ActionUpdate) {
		return
	}
	h.update(c, id, orders.TicketPatch{Row: &req.Row, Seat: &req.Seat, FlightID: &req.Flight, OrderID: &req.Order})
}

func (h *TicketHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ticketPatchRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedCreateStaffFull, policy.ActionUpdate) {
		return
	}
	h.update(c, id, orders.TicketPatch{Row: req.Row, Seat: req.Seat, FlightID: req.Flight, OrderID: req.Order})
}

func (h *TicketHandler) update(c *gin.Context, id int64, patch orders.TicketPatch) {
	ticket, err := h.service.UpdateTicket(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentTicket(*ticket))
}

func (h *TicketHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTicket(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
