package controllers

import (
	"net/http"
	"strconv"

	"paper-submission-api/models"

	"github.com/gin-gonic/gin"
)

// ===================== REVIEWER ASSIGNMENT (ADMIN) =====================

// AssignReviewer assigns a reviewer to a submission.
func AssignReviewer(c *gin.Context) {
	var req models.AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := workflow.AssignReviewer(currentActor(c), c.Param("id"), req.ReviewerID, req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Reviewer assigned successfully",
		"assignment": assignment,
	})
}

// RemoveReviewer releases a reviewer from a submission.
func RemoveReviewer(c *gin.Context) {
	reviewerID, err := strconv.Atoi(c.Param("reviewer_id"))
	if err != nil || reviewerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer ID"})
		return
	}

	if err := workflow.RemoveReviewer(currentActor(c), c.Param("id"), reviewerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reviewer removed successfully",
	})
}

// GetSubmissionAssignments lists the review assignments of a submission.
func GetSubmissionAssignments(c *gin.Context) {
	assignments, err := ledger.FindBySubmission(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// ===================== REVIEWS & STATISTICS (ADMIN) =====================

// GetSubmissionReviews lists all reviews of a submission.
func GetSubmissionReviews(c *gin.Context) {
	reviews, err := reviewStore.FindBySubmission(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// GetReviewStats returns aggregate review statistics for a submission.
func GetReviewStats(c *gin.Context) {
	stats, err := reviewStore.Stats(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// ===================== DECISIONS (ADMIN) =====================

// AdminDecision records accept/reject/revise for a submission that has
// completed review (revise is also allowed while still under review).
func AdminDecision(c *gin.Context) {
	var req struct {
		Decision string  `json:"decision" binding:"required,oneof=accept reject revise"`
		Comment  *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := workflow.AdminDecision(currentActor(c), c.Param("id"), req.Decision, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Decision recorded",
		"submission": sub.ToResponse(),
	})
}

// OverrideStatus is the administrative escape hatch for setting any status.
func OverrideStatus(c *gin.Context) {
	var req struct {
		Status string  `json:"status" binding:"required"`
		Reason *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := workflow.OverrideStatus(currentActor(c), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Status overridden",
		"submission": sub.ToResponse(),
	})
}

// SendDecisionNotification re-sends the decision email for a decided
// submission.
func SendDecisionNotification(c *gin.Context) {
	if err := workflow.SendDecisionEmail(currentActor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Decision notification sent",
	})
}
