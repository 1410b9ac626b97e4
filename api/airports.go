package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirportHandler struct {
	service catalog.CatalogUseCase
}

type airportRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	ClosestBigCity string `json:"closest_big_city" binding:"required,max=255"`
}

type airportPatchRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	ClosestBigCity *string `json:"closest_big_city" binding:"omitempty,max=255"`
}

func NewAirportHandler(service catalog.CatalogUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/arrivals", h.arrivals)
	router.GET("/:id/departures", h.departures)
}

func (h *AirportHandler) list(c *gin.Context) {
	filter := domain.AirportFilter{Name: c.Query("name"), City: c.Query("city")}
	airports, err := h.service.ListAirports(c.Request.Context(), identityFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]airportResponse, 0, len(airports))
	for _, a := range airports {
		out = append(out, presentAirport(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirportHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	airport, err := h.service.GetAirport(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentAirport(*airport))
}

func (h *AirportHandler) create(c *gin.Context) {
	var req airportRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionCreate) {
		return
	}
	airport, err := h.service.CreateAirport(c.Request.Context(), identityFrom(c), catalog.AirportInput{
		Name:           req.Name,
		ClosestBigCity: req.ClosestBigCity,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentAirport(*airport))
}

func (h *AirportHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airportRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.AirportPatch{Name: &req.Name, ClosestBigCity: &req.ClosestBigCity})
}

func (h *AirportHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airportPatchRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.AirportPatch{Name: req.Name, ClosestBigCity: req.ClosestBigCity})
}

func (h *AirportHandler) update(c *gin.Context, id int64, patch catalog.AirportPatch) {
	airport, err := h.service.UpdateAirport(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentAirport(*airport))
}

func (h *AirportHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirport(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AirportHandler) arrivals(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	routes, err := h.service.AirportArrivals(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentRouteList(routes))
}

func (h *AirportHandler) departures(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	routes, err := h.service.AirportDepartures(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentRouteList(routes))
}
