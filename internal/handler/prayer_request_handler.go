package handler

import (
	"errors"
	"log"
	"net/http"

	"church_membership/internal/model"
	"church_membership/internal/service"

	"github.com/gin-gonic/gin"
)

// PrayerRequestHandler handles prayer request submission and staff triage
type PrayerRequestHandler struct {
	service service.PrayerRequestService
}

// NewPrayerRequestHandler creates a new PrayerRequestHandler
func NewPrayerRequestHandler(s service.PrayerRequestService) *PrayerRequestHandler {
	return &PrayerRequestHandler{service: s}
}

// Create accepts a public submission; no session required
func (h *PrayerRequestHandler) Create(c *gin.Context) {
	var req model.CreatePrayerRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	pr, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating prayer request: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create prayer request")
		return
	}
	c.JSON(http.StatusCreated, pr)
}

func (h *PrayerRequestHandler) GetAll(c *gin.Context) {
	var (
		requests []model.PrayerRequest
		err      error
	)
	if status := c.Query("status"); status != "" {
		requests, err = h.service.GetByStatus(c.Request.Context(), status)
	} else {
		requests, err = h.service.GetAll(c.Request.Context())
	}
	if err != nil {
		log.Printf("Error fetching prayer requests: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch prayer requests")
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *PrayerRequestHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching prayer request stats: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch prayer request stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *PrayerRequestHandler) GetByID(c *gin.Context) {
	pr, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPrayerRequestNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error fetching prayer request: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch prayer request")
		return
	}
	c.JSON(http.StatusOK, pr)
}

func (h *PrayerRequestHandler) Update(c *gin.Context) {
	var req model.UpdatePrayerRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	pr, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrPrayerRequestNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error updating prayer request: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update prayer request")
		return
	}
	c.JSON(http.StatusOK, pr)
}

func (h *PrayerRequestHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPrayerRequestNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error deleting prayer request: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete prayer request")
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterPrayerRequestRoutes registers prayer request routes; creation is
// public, everything else requires a session
func (h *PrayerRequestHandler) RegisterPrayerRequestRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/prayer-requests")
	{
		group.POST("", h.Create)
		group.GET("", authMW, h.GetAll)
		group.GET("/stats", authMW, h.GetStats)
		group.GET("/:id", authMW, h.GetByID)
		group.PATCH("/:id", authMW, h.Update)
		group.DELETE("/:id", authMW, h.Delete)
	}
}
