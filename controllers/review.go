package controllers

import (
	"net/http"

	"paper-submission-api/models"

	"github.com/gin-gonic/gin"
)

// ===================== REVIEWER WORKSPACE =====================

// GetMyAssignments lists the caller's review assignments.
func GetMyAssignments(c *gin.Context) {
	actor := currentActor(c)

	assignments, err := ledger.FindByReviewer(actor.UserID)
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

// SaveReview saves the caller's review of a submission. Scores left out of
// the request keep their stored values; complete=true finalizes the review
// and feeds the consensus evaluation.
func SaveReview(c *gin.Context) {
	var req models.ReviewSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := workflow.SaveReview(currentActor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Review draft saved"
	if review.IsCompleted {
		message = "Review completed"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"review":  review,
	})
}

// GetMyReview returns the caller's review of a submission, if any.
func GetMyReview(c *gin.Context) {
	actor := currentActor(c)

	review, err := reviewStore.FindByPair(c.Param("id"), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  review,
	})
}
