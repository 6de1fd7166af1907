package availability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/moeenhealth/clinic-api/internal/service/availability"
	apperrors "github.com/moeenhealth/clinic-api/pkg/errors"
	"github.com/moeenhealth/clinic-api/pkg/metrics"
)

// Handler exposes the public slot-search endpoint. The response shapes and
// error strings here are consumed by the patient-facing mobile app and must
// not change without coordinating a client release.
type Handler struct {
	service *availability.Service
	metrics *metrics.Metrics
}

func NewHandler(service *availability.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/available-slots", h.GetAvailableSlots)
	}
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	sessionTypeParam := c.Query("sessionTypeId")
	dateParam := c.Query("date")
	if sessionTypeParam == "" || dateParam == "" {
		h.observe("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionTypeId and date are required"})
		return
	}

	sessionTypeID, err := uuid.Parse(sessionTypeParam)
	if err != nil {
		// A malformed id can never match a session type.
		h.observe("not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Session type not found"})
		return
	}

	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.observe("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	req := availability.Request{
		SessionTypeID: sessionTypeID,
		Date:          date,
	}
	if therapistParam := c.Query("therapistId"); therapistParam != "" {
		therapistID, err := uuid.Parse(therapistParam)
		if err != nil {
			h.observe("bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapistId"})
			return
		}
		req.TherapistID = &therapistID
	}

	timer := prometheus.NewTimer(h.metrics.SlotSearchLatency)
	resp, err := h.service.AvailableSlots(c.Request.Context(), req)
	timer.ObserveDuration()

	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			switch appErr.Code {
			case apperrors.ErrNotFound:
				h.observe("not_found")
				c.JSON(http.StatusNotFound, gin.H{"error": "Session type not found"})
				return
			case apperrors.ErrBadRequest:
				h.observe("bad_request")
				c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
				return
			default:
				log.Error().Err(appErr.Err).Str("stage", appErr.Stage).Msg("slot search failed")
			}
		} else {
			log.Error().Err(err).Msg("slot search failed")
		}
		h.observe("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.observe("success")
	h.metrics.SlotsReturned.Observe(float64(len(resp.Slots)))
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) observe(status string) {
	h.metrics.SlotSearches.WithLabelValues(status).Inc()
}
