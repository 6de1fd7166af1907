package therapist

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/service/therapist"
	"github.com/moeenhealth/clinic-api/pkg/httputil"
)

type Handler struct {
	service *therapist.Service
}

func NewHandler(service *therapist.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	therapists := r.Group("/therapists")
	{
		therapists.POST("", h.CreateTherapist)
		therapists.GET("", h.ListTherapists)
		therapists.GET("/:id", h.GetTherapist)
		therapists.PUT("/:id", h.UpdateTherapist)
		therapists.DELETE("/:id", h.DeleteTherapist)

		therapists.GET("/:id/schedules", h.ListSchedules)
		therapists.POST("/:id/schedules", h.UpsertSchedule)
		therapists.DELETE("/:id/schedules/:scheduleId", h.DeleteSchedule)

		therapists.GET("/:id/session-types", h.ListQualifications)
		therapists.POST("/:id/session-types", h.AddQualification)
		therapists.DELETE("/:id/session-types/:sessionTypeId", h.RemoveQualification)
	}
}

func (h *Handler) CreateTherapist(c *gin.Context) {
	var req model.CreateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.CreateTherapist(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, t)
}

func (h *Handler) GetTherapist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	t, err := h.service.GetTherapist(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, t)
}

func (h *Handler) ListTherapists(c *gin.Context) {
	therapists, err := h.service.ListTherapists(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, therapists)
}

func (h *Handler) UpdateTherapist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	var req model.UpdateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.UpdateTherapist(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, t)
}

func (h *Handler) DeleteTherapist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	if err := h.service.DeleteTherapist(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func (h *Handler) ListSchedules(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	schedules, err := h.service.ListSchedules(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, schedules)
}

func (h *Handler) UpsertSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	var req model.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.service.UpsertSchedule(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, schedule)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("scheduleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	if err := h.service.DeleteSchedule(c.Request.Context(), scheduleID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func (h *Handler) ListQualifications(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	qualifications, err := h.service.ListQualifications(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, qualifications)
}

func (h *Handler) AddQualification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	var req model.AddQualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AddQualification(c.Request.Context(), id, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, gin.H{"added": true})
}

func (h *Handler) RemoveQualification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}

	sessionTypeID, err := uuid.Parse(c.Param("sessionTypeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session type id"})
		return
	}

	if err := h.service.RemoveQualification(c.Request.Context(), id, sessionTypeID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"removed": true})
}
