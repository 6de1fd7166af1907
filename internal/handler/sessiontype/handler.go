package sessiontype

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/service/sessiontype"
	"github.com/moeenhealth/clinic-api/pkg/httputil"
)

type Handler struct {
	service *sessiontype.Service
}

func NewHandler(service *sessiontype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	types := r.Group("/session-types")
	{
		types.POST("", h.CreateSessionType)
		types.GET("", h.ListSessionTypes)
		types.GET("/:id", h.GetSessionType)
		types.PUT("/:id", h.UpdateSessionType)
		types.DELETE("/:id", h.DeleteSessionType)
	}
}

func (h *Handler) CreateSessionType(c *gin.Context) {
	var req model.CreateSessionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.service.CreateSessionType(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, st)
}

func (h *Handler) GetSessionType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session type id"})
		return
	}

	st, err := h.service.GetSessionType(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, st)
}

func (h *Handler) ListSessionTypes(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	types, err := h.service.ListSessionTypes(c.Request.Context(), activeOnly)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, types)
}

func (h *Handler) UpdateSessionType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session type id"})
		return
	}

	var req model.UpdateSessionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.service.UpdateSessionType(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, st)
}

func (h *Handler) DeleteSessionType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session type id"})
		return
	}

	if err := h.service.DeleteSessionType(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
