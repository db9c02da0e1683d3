package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"streak-service/internal/service"

	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	Service *service.StreakService
}

func NewStreakHandler(s *service.StreakService) *StreakHandler {
	return &StreakHandler{Service: s}
}

type updateStreakRequest struct {
	LessonsCompleted int     `json:"lessonsCompleted"`
	CoursesCompleted int     `json:"coursesCompleted"`
	StudyHours       float64 `json:"studyHours"`
}

func (h *StreakHandler) GetStreak(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	streak, err := h.Service.GetStreak(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching streak data", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *StreakHandler) UpdateStreak(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")

	var req updateStreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Activity is reported for the request day; negative or non-finite
	// figures are coerced to zero inside the engine.
	streak, err := h.Service.ReportActivity(context.Background(), userID, time.Now(), req.LessonsCompleted, req.CoursesCompleted, req.StudyHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating streak", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streak)
}

func (h *StreakHandler) GetAchievements(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	achievements, err := h.Service.GetAchievements(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching achievements", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, achievements)
}

func (h *StreakHandler) GetTwoWeekSummary(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	summary, err := h.Service.GetTwoWeekSummary(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching current two weeks streak data", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StreakHandler) GetYearlyCalendar(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")

	year := time.Now().Year()
	if raw := c.Param("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	calendar, err := h.Service.GetYearlyCalendar(context.Background(), userID, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching yearly streak data", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, calendar)
}

func (h *StreakHandler) GetWeek(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")

	nowYear, nowWeek := time.Now().ISOWeek()
	year := nowYear
	week := nowWeek
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}
	if raw := c.Query("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 53 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week number"})
			return
		}
		week = parsed
	}

	days, err := h.Service.GetWeek(context.Background(), userID, year, week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching week streak data", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "week": week, "weekData": days})
}
