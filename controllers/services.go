package controllers

import (
	"errors"
	"log"
	"net/http"

	"paper-submission-api/services"

	"github.com/gin-gonic/gin"
)

// Workflow services are constructed once in main and injected here before
// the router starts serving.
var (
	workflow       *services.WorkflowService
	submissionRepo services.SubmissionRepository
	ledger         services.AssignmentLedger
	reviewStore    services.ReviewStore
)

// InitServices wires the service layer into the controller package.
func InitServices(
	wf *services.WorkflowService,
	subs services.SubmissionRepository,
	assignments services.AssignmentLedger,
	reviews services.ReviewStore,
) {
	workflow = wf
	submissionRepo = subs
	ledger = assignments
	reviewStore = reviews
}

// currentActor extracts the authenticated caller set by the auth middleware.
func currentActor(c *gin.Context) services.Actor {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")
	return services.Actor{UserID: userID.(int), RoleID: roleID.(int)}
}

// respondError maps domain error kinds to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case services.IsExternal(err):
		log.Printf("External failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream system failure"})
	default:
		log.Printf("Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
