// controllers/submission.go
package controllers

import (
	"net/http"
	"strconv"

	"paper-submission-api/models"
	"paper-submission-api/services"

	"github.com/gin-gonic/gin"
)

// ===================== SUBMISSION MANAGEMENT =====================

// GetSubmissions returns the caller's submissions; administrators see all.
func GetSubmissions(c *gin.Context) {
	actor := currentActor(c)

	var (
		subs []models.Submission
		err  error
	)
	if actor.IsAdmin() {
		subs, err = submissionRepo.ListAll()
	} else {
		subs, err = submissionRepo.ListForUser(actor.UserID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.SubmissionResponse, 0, len(subs))
	for i := range subs {
		responses = append(responses, subs[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": responses,
		"total":       len(responses),
	})
}

// GetSubmission returns a specific submission for its owner, an
// administrator, or an assigned reviewer.
func GetSubmission(c *gin.Context) {
	sub, err := workflow.GetSubmission(currentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": sub.ToResponse(),
	})
}

// CreateSubmission creates a submission from a multipart form carrying the
// paper fields and the PDF artifact.
func CreateSubmission(c *gin.Context) {
	actor := currentActor(c)

	eventID, err := strconv.Atoi(c.PostForm("event_id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	title := c.PostForm("title")
	abstract := c.PostForm("abstract")
	corresponding := c.PostForm("corresponding_author")
	if title == "" || abstract == "" || corresponding == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, abstract and corresponding_author are required"})
		return
	}

	req := services.CreateSubmissionRequest{
		EventID:             eventID,
		Title:               title,
		Abstract:            abstract,
		Keywords:            c.PostForm("keywords"),
		CorrespondingAuthor: corresponding,
		Status:              c.PostForm("status"),
	}
	if co, ok := c.GetPostForm("co_authors"); ok {
		req.CoAuthors = &co
	}

	fileHeader, err := c.FormFile("artifact")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A PDF artifact is required"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	req.Artifact = &services.ArtifactUpload{
		Reader:      src,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	}

	sub, err := workflow.CreateSubmission(actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Submission created successfully",
		"submission": sub.ToResponse(),
	})
}

// UpdateSubmission applies a partial update, optionally replacing the
// artifact when a new file is attached.
func UpdateSubmission(c *gin.Context) {
	actor := currentActor(c)
	submissionID := c.Param("id")

	var (
		req    models.SubmissionUpdateRequest
		upload *services.ArtifactUpload
	)

	if form, err := c.MultipartForm(); err == nil && form != nil {
		req = updateRequestFromForm(c)

		if fileHeader, ferr := c.FormFile("artifact"); ferr == nil {
			src, oerr := fileHeader.Open()
			if oerr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
				return
			}
			defer src.Close()
			upload = &services.ArtifactUpload{
				Reader:      src,
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Size:        fileHeader.Size,
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := workflow.UpdateSubmission(actor, submissionID, req, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission updated successfully",
		"submission": sub.ToResponse(),
	})
}

// DeleteSubmission removes the submission and its artifact. Owners may only
// delete before review work has started; administrators always may.
func DeleteSubmission(c *gin.Context) {
	if err := workflow.DeleteSubmission(currentActor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission deleted successfully",
	})
}

// SubmitSubmission moves a draft to submitted.
func SubmitSubmission(c *gin.Context) {
	sub, err := workflow.SubmitDraft(currentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission submitted successfully",
		"submission": sub.ToResponse(),
	})
}

func updateRequestFromForm(c *gin.Context) models.SubmissionUpdateRequest {
	var req models.SubmissionUpdateRequest
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("abstract"); ok {
		req.Abstract = &v
	}
	if v, ok := c.GetPostForm("keywords"); ok {
		req.Keywords = &v
	}
	if v, ok := c.GetPostForm("corresponding_author"); ok {
		req.CorrespondingAuthor = &v
	}
	if v, ok := c.GetPostForm("co_authors"); ok {
		req.CoAuthors = &v
	}
	return req
}
