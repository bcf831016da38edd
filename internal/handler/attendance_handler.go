package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"church_membership/internal/model"
	"church_membership/internal/service"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler handles attendance marking, queries and statistics
type AttendanceHandler struct {
	service service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(s service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: s}
}

// Mark upserts the attendance record for (userId, date)
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	record, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrAttendanceUserUnknown):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateAttendance):
			respondError(c, http.StatusConflict, err.Error())
		default:
			log.Printf("Error marking attendance: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to mark attendance")
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) GetByUser(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "userId is required")
		return
	}

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.service.GetByUser(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("Error fetching attendance: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance records")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetRecent(c *gin.Context) {
	days := 30
	if daysParam := c.Query("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid days")
			return
		}
		days = parsed
	}

	records, err := h.service.GetRecent(c.Request.Context(), c.Param("userId"), days)
	if err != nil {
		log.Printf("Error fetching recent attendance: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch recent attendance")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetMonthlyStats(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Query("year"))
	month, errMonth := strconv.Atoi(c.Query("month"))
	if errYear != nil || errMonth != nil || month < 1 || month > 12 {
		respondError(c, http.StatusBadRequest, "Invalid year or month")
		return
	}

	stats, err := h.service.MonthlyStats(c.Request.Context(), c.Param("userId"), year, month)
	if err != nil {
		log.Printf("Error fetching monthly stats: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch monthly attendance stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AttendanceHandler) GetByDateRange(c *gin.Context) {
	startParam := c.Query("startDate")
	endParam := c.Query("endDate")
	if startParam == "" || endParam == "" {
		respondError(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, errStart := time.Parse("2006-01-02", startParam)
	end, errEnd := time.Parse("2006-01-02", endParam)
	if errStart != nil || errEnd != nil {
		respondError(c, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
		return
	}

	records, err := h.service.GetByDateRange(c.Request.Context(), c.Param("userId"), start, end)
	if err != nil {
		log.Printf("Error fetching attendance by range: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance by date range")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetByServiceType(c *gin.Context) {
	serviceType := c.Query("type")
	if serviceType == "" {
		respondError(c, http.StatusBadRequest, "Service type is required")
		return
	}

	records, err := h.service.GetByServiceType(c.Request.Context(), c.Param("userId"), serviceType)
	if err != nil {
		log.Printf("Error fetching attendance by service type: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance by service type")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		log.Printf("Error fetching attendance stats: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AttendanceHandler) GetOverallStats(c *gin.Context) {
	stats, err := h.service.OverallStats(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching overall attendance stats: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch overall attendance stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAttendanceNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error deleting attendance: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete attendance record")
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterAttendanceRoutes registers attendance routes
func (h *AttendanceHandler) RegisterAttendanceRoutes(rg *gin.RouterGroup) {
	attendanceGroup := rg.Group("/attendance")
	{
		attendanceGroup.POST("/mark", h.Mark)
		attendanceGroup.GET("", h.GetByUser)
		attendanceGroup.GET("/recent/:userId", h.GetRecent)
		attendanceGroup.GET("/monthly/:userId", h.GetMonthlyStats)
		attendanceGroup.GET("/range/:userId", h.GetByDateRange)
		attendanceGroup.GET("/service/:userId", h.GetByServiceType)
		attendanceGroup.GET("/stats/:userId", h.GetStats)
		attendanceGroup.GET("/overall/stats", h.GetOverallStats)
		attendanceGroup.DELETE("/:id", h.Delete)
	}
}
