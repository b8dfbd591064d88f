package controllers

import (
	"net/http"
	"time"

	"paper-submission-api/config"
	"paper-submission-api/models"

	"github.com/gin-gonic/gin"
)

// GetEvents lists events, most recent first.
func GetEvents(c *gin.Context) {
	var events []models.Event
	if err := config.DB.Where("delete_at IS NULL").
		Order("event_date DESC").
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"events":  events,
		"total":   len(events),
	})
}

// GetEvent returns a single event.
func GetEvent(c *gin.Context) {
	var event models.Event
	if err := config.DB.Where("event_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": event})
}

// CreateEvent creates a new event (admin only).
func CreateEvent(c *gin.Context) {
	var req models.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SubmissionEndDate.Before(req.SubmissionStartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission window end must not precede its start"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()
	event := models.Event{
		EventName:           req.EventName,
		Description:         req.Description,
		Location:            req.Location,
		EventDate:           req.EventDate,
		SubmissionStartDate: req.SubmissionStartDate,
		SubmissionEndDate:   req.SubmissionEndDate,
		CreatedBy:           userID.(int),
		CreateAt:            now,
		UpdateAt:            now,
	}

	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Event created successfully",
		"event":   event,
	})
}

// UpdateEvent updates event fields (admin only).
func UpdateEvent(c *gin.Context) {
	var event models.Event
	if err := config.DB.Where("event_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var req models.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if start, end := req.EffectiveWindow(&event); end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission window end must not precede its start"})
		return
	}

	fields := map[string]interface{}{"update_at": time.Now()}
	if req.EventName != nil {
		fields["event_name"] = *req.EventName
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.EventDate != nil {
		fields["event_date"] = *req.EventDate
	}
	if req.SubmissionStartDate != nil {
		fields["submission_start_date"] = *req.SubmissionStartDate
	}
	if req.SubmissionEndDate != nil {
		fields["submission_end_date"] = *req.SubmissionEndDate
	}

	if err := config.DB.Model(&event).Updates(fields).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event updated successfully",
		"event":   event,
	})
}
