package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	service catalog.CatalogUseCase
	flights flights.FlightUseCase
}

type routeRequest struct {
	Source      int64 `json:"source" binding:"required,gt=0"`
	Destination int64 `json:"destination" binding:"required,gt=0"`
	Distance    int   `json:"distance" binding:"required,gt=0"`
}

type routePatchRequest struct {
	Source      *int64 `json:"source" binding:"omitempty,gt=0"`
	Destination *int64 `json:"destination" binding:"omitempty,gt=0"`
	Distance    *int   `json:"distance"`
}

func NewRouteHandler(service catalog.CatalogUseCase, flightService flights.FlightUseCase) *RouteHandler {
	return &RouteHandler{service: service, flights: flightService}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/flights", h.routeFlights)
}

func (h *RouteHandler) list(c *gin.Context) {
	filter := domain.RouteFilter{Source: c.Query("source"), Destination: c.Query("destination")}
	routes, err := h.service.ListRoutes(c.Request.Context(), identityFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentRouteList(routes))
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentRoute(*route))
}

func (h *RouteHandler) create(c *gin.Context) {
	var req routeRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionCreate) {
		return
	}
	route, err := h.service.CreateRoute(c.Request.Context(), identityFrom(c), catalog.RouteInput{
		SourceID:      req.Source,
		DestinationID: req.Destination,
		Distance:      req.Distance,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentRoute(*route))
}

func (h *RouteHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req routeRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.RoutePatch{SourceID: &req.Source, DestinationID: &req.Destination, Distance: &req.Distance})
}

func (h *RouteHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req routePatchRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.RoutePatch{SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance})
}

func (h *RouteHandler) update(c *gin.Context, id int64, patch catalog.RoutePatch) {
	route, err := h.service.UpdateRoute(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentRoute(*route))
}

func (h *RouteHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoute(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RouteHandler) routeFlights(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.flights.RouteFlights(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentFlightList(list))
}
