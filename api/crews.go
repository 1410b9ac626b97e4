package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type CrewHandler struct {
	service flights.CrewUseCase
}

type crewRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
}

type crewPatchRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,max=255"`
}

func NewCrewHandler(service flights.CrewUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *CrewHandler) list(c *gin.Context) {
	crews, err := h.service.ListCrews(c.Request.Context(), identityFrom(c), domain.CrewFilter{Contains: c.Query("contains")})
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]crewResponse, 0, len(crews))
	for _, crew := range crews {
		out = append(out, presentCrew(crew))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	crew, err := h.service.GetCrew(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentCrew(*crew))
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if !bindAuthorized(c, &req, policy.StaffOnly, policy.ActionCreate) {
		return
	}
	crew, err := h.service.CreateCrew(c.Request.Context(), identityFrom(c), flights.CrewInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentCrew(*crew))
}

func (h *CrewHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req crewRequest
	if !bindAuthorized(c, &req, policy.StaffOnly, policy.ActionUpdate) {
		return
	}
	h.update(c, id, flights.CrewPatch{FirstName: &req.FirstName, LastName: &req.LastName})
}

func (h *CrewHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req crewPatchRequest
	if !bindAuthorized(c, &req, policy.StaffOnly, policy.ActionUpdate) {
		return
	}
	h.update(c, id, flights.CrewPatch{FirstName: req.FirstName, LastName: req.LastName})
}

func (h *CrewHandler) update(c *gin.Context, id int64, patch flights.CrewPatch) {
	crew, err := h.service.UpdateCrew(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentCrew(*crew))
}

func (h *CrewHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCrew(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type FlightCrewMemberHandler struct {
	service flights.CrewUseCase
}

type memberRequest struct {
	Flight int64 `json:"flight" binding:"required,gt=0"`
	Crew   int64 `json:"crew" binding:"required,gt=0"`
}

type memberPatchRequest struct {
	Flight *int64 `json:"flight" binding:"omitempty,gt=0"`
	Crew   *int64 `json:"crew" binding:"omitempty,gt=0"`
}

func NewFlightCrewMemberHandler(service flights.CrewUseCase) *FlightCrewMemberHandler {
	return &FlightCrewMemberHandler{service: service}
}

func (h *FlightCrewMemberHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.replace)
	router.PATCH("/:id", h.patch)
	router.DELETE("/:id", h.delete)
}

func (h *FlightCrewMemberHandler) list(c *gin.Context) {
	verr := &domain.ValidationError{}
	filter := domain.FlightCrewMemberFilter{
		Contains: c.Query("contains"),
		FlightID: queryID(c, "flight", verr),
	}
	if rejectFilter(c, policy.StaffOnly, verr) {
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), identityFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentMemberList(members))
}

func (h *FlightCrewMemberHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	member, err := h.service.GetMember(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentMember(*member))
}

func (h *FlightCrewMemberHandler) create(c *gin.Context) {
	var req memberRequest
	if !bindAuthorized(c, &req, policy.StaffOnly, policy.ActionCreate) {
		return
	}
	member, err := h.service.CreateMember(c.Request.Context(), identityFrom(c), flights.MemberInput{
		FlightID: req.Flight,
		CrewID:   req.Crew,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, presentMember(*member))
}

func (h *FlightCrewMemberHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req memberRequest
	if !bindAuthorized(c, &req, policy.StaffOnly, policy.ActionUpdate) {
		return
	}
	h.update(c, id, flights.MemberPatch{FlightID: &req.Flight, CrewID: &req.Crew})
}

func (h *FlightCrewMemberHandler) patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req memberPatchRequest
	if !bindAuthorized(c, &req, policy.StaffOnly, policy.ActionUpdate) {
		return
	}
	h.update(c, id, flights.MemberPatch{FlightID: req.Flight, CrewID: req.Crew})
}

func (h *FlightCrewMemberHandler) update(c *gin.Context, id int64, patch flights.MemberPatch) {
	member, err := h.service.UpdateMember(c.Request.Context(), identityFrom(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentMember(*member))
}

func (h *FlightCrewMemberHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteMember(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
