package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirplaneTypeHandler struct {
	service catalog.CatalogUseCase
}

type airplaneTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type airplaneTypePatchRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

func NewAirplaneTypeHandler(service catalog.CatalogUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context(), identityFrom(c), domain.AirplaneTypeFilter{Name: c.Query("name")})
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]airplaneTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, presentAirplaneType(t))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirplaneTypeHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	airplaneType, err := h.service.GetAirplaneType(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentAirplaneType(*airplaneType))
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req airplaneTypeRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionCreate) {
		return
	}
	airplaneType, err := h.service.CreateAirplaneType(c.Request.Context(), identityFrom(c), catalog.AirplaneTypeInput{Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentAirplaneType(*airplaneType))
}

func (h *AirplaneTypeHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airplaneTypeRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.AirplaneTypePatch{Name: &req.Name})
}

func (h *AirplaneTypeHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airplaneTypePatchRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.AirplaneTypePatch{Name: req.Name})
}

func (h *AirplaneTypeHandler) update(c *gin.Context, id int64, patch catalog.AirplaneTypePatch) {
	airplaneType, err := h.service.UpdateAirplaneType(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentAirplaneType(*airplaneType))
}

func (h *AirplaneTypeHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplaneType(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type AirplaneHandler struct {
	service catalog.CatalogUseCase
}

type airplaneRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Rows         int    `json:"rows" binding:"required,gt=0"`
	SeatsInRow   int    `json:"seats_in_row" binding:"required,gt=0"`
	AirplaneType int64  `json:"airplane_type" binding:"required,gt=0"`
}

type airplanePatchRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	Rows         *int    `json:"rows"`
	SeatsInRow   *int    `json:"seats_in_row"`
	AirplaneType *int64  `json:"airplane_type" binding:"omitempty,gt=0"`
}

func NewAirplaneHandler(service catalog.CatalogUseCase) *AirplaneHandler {
	return &AirplaneHandler{service: service}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *AirplaneHandler) list(c *gin.Context) {
	filter := domain.AirplaneFilter{Name: c.Query("name"), AirplaneType: c.Query("airplane_type")}
	airplanes, err := h.service.ListAirplanes(c.Request.Context(), identityFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentAirplaneList(airplanes))
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentAirplane(*airplane))
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req airplaneRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionCreate) {
		return
	}
	airplane, err := h.service.CreateAirplane(c.Request.Context(), identityFrom(c), catalog.AirplaneInput{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneType,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentAirplane(*airplane))
}

func (h *AirplaneHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airplaneRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.AirplanePatch{
		Name:           &req.Name,
		Rows:           &req.Rows,
		SeatsInRow:     &req.SeatsInRow,
		AirplaneTypeID: &req.AirplaneType,
	})
}

func (h *AirplaneHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airplanePatchRequest
	if !bindAuthorized(c, &req, policy.AuthenticatedReadStaffWrite, policy.ActionUpdate) {
		return
	}
	h.update(c, id, catalog.AirplanePatch{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneType,
	})
}

func (h *AirplaneHandler) update(c *gin.Context, id int64, patch catalog.AirplanePatch) {
	airplane, err := h.service.UpdateAirplane(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentAirplane(*airplane))
}

func (h *AirplaneHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplane(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
