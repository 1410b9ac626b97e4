package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	Route         int64     `json:"route" binding:"required,gt=0"`
	Airplane      int64     `json:"airplane" binding:"required,gt=0"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
}

type flightPatchRequest struct {
	Route         *int64     `json:"route" binding:"omitempty,gt=0"`
	Airplane      *int64     `json:"airplane" binding:"omitempty,gt=0"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/crew_members", h.crewMembers)
}

func (h *FlightHandler) list(c *gin.Context) {
	verr := &domain.ValidationError{}
	filter := domain.FlightFilter{
		Source:       c.Query("source"),
		Destination:  c.Query("destination"),
		DepartureDay: queryDay(c, "departure_day", verr),
		ArrivalDay:   queryDay(c, "arrival_day", verr),
	}
	if rejectFilter(c, policy.AuthenticatedReadStaffWrite, verr) {
		return
	}

	list, err := h.service.ListFlights(c.Request.Context(), identityFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentFlightList(list))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	details, err := h.service.GetFlight(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentFlightDetails(details))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionCreate) {
		return
	}
	flight, err := h.service.CreateFlight(c.Request.Context(), identityFrom(c), flights.FlightInput{
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentFlight(*flight))
}

func (h *FlightHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req flightRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, flights.FlightPatch{
		RouteID:       &req.Route,
		AirplaneID:    &req.Airplane,
		DepartureTime: &req.DepartureTime,
		ArrivalTime:   &req.ArrivalTime,
	})
}

func (h *FlightHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req flightPatchRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, flights.FlightPatch{
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	})
}

func (h *FlightHandler) update(c *gin.Context, id int64, patch flights.FlightPatch) {
	flight, err := h.service.UpdateFlight(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentFlight(*flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteFlight(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) crewMembers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	members, err := h.service.FlightCrew(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentMemberList(members))
}
