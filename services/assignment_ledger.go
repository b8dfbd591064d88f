package services

import (
	"errors"
	"fmt"
	"time"

	"paper-submission-api/models"

	"gorm.io/gorm"
)

// AssignmentLedger owns the reviewer-to-submission assignment relation.
// IsAssigned both gates duplicate assignments and authorizes reviewer access
// to a submission.
type AssignmentLedger interface {
	Create(a *models.ReviewAssignment) error
	FindByID(id int) (*models.ReviewAssignment, error)
	FindBySubmission(submissionID string) ([]models.ReviewAssignment, error)
	FindByReviewer(reviewerID int) ([]models.ReviewAssignment, error)
	FindByPair(submissionID string, reviewerID int) (*models.ReviewAssignment, error)
	UpdateStatus(id int, status string) error
	Delete(id int) error
	IsAssigned(submissionID string, reviewerID int) (bool, error)
}

type gormAssignmentLedger struct {
	db *gorm.DB
}

// NewAssignmentLedger returns the GORM-backed assignment ledger.
func NewAssignmentLedger(db *gorm.DB) AssignmentLedger {
	return &gormAssignmentLedger{db: db}
}

// Create fails with ErrConflict when the (submission, reviewer) pair already
// holds an assignment.
func (l *gormAssignmentLedger) Create(a *models.ReviewAssignment) error {
	assigned, err := l.IsAssigned(a.SubmissionID, a.ReviewerID)
	if err != nil {
		return err
	}
	if assigned {
		return fmt.Errorf("%w: reviewer %d is already assigned to submission %s",
			ErrConflict, a.ReviewerID, a.SubmissionID)
	}

	now := time.Now()
	if a.Status == "" {
		a.Status = models.AssignmentPending
	}
	a.CreateAt = now
	a.UpdateAt = now
	if err := l.db.Create(a).Error; err != nil {
		return externalErr("database", err)
	}
	return nil
}

func (l *gormAssignmentLedger) FindByID(id int) (*models.ReviewAssignment, error) {
	var a models.ReviewAssignment
	err := l.db.Where("assignment_id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: assignment %d", ErrNotFound, id)
		}
		return nil, externalErr("database", err)
	}
	return &a, nil
}

func (l *gormAssignmentLedger) FindBySubmission(submissionID string) ([]models.ReviewAssignment, error) {
	var rows []models.ReviewAssignment
	err := l.db.Preload("Reviewer").
		Where("submission_id = ?", submissionID).
		Order("create_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, externalErr("database", err)
	}
	return rows, nil
}

func (l *gormAssignmentLedger) FindByReviewer(reviewerID int) ([]models.ReviewAssignment, error) {
	var rows []models.ReviewAssignment
	err := l.db.Preload("Submission").
		Where("reviewer_id = ?", reviewerID).
		Order("create_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, externalErr("database", err)
	}
	return rows, nil
}

func (l *gormAssignmentLedger) FindByPair(submissionID string, reviewerID int) (*models.ReviewAssignment, error) {
	var a models.ReviewAssignment
	err := l.db.Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no assignment for reviewer %d on submission %s",
				ErrNotFound, reviewerID, submissionID)
		}
		return nil, externalErr("database", err)
	}
	return &a, nil
}

func (l *gormAssignmentLedger) UpdateStatus(id int, status string) error {
	res := l.db.Model(&models.ReviewAssignment{}).
		Where("assignment_id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"update_at": time.Now(),
		})
	if res.Error != nil {
		return externalErr("database", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: assignment %d", ErrNotFound, id)
	}
	return nil
}

func (l *gormAssignmentLedger) Delete(id int) error {
	res := l.db.Where("assignment_id = ?", id).Delete(&models.ReviewAssignment{})
	if res.Error != nil {
		return externalErr("database", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: assignment %d", ErrNotFound, id)
	}
	return nil
}

func (l *gormAssignmentLedger) IsAssigned(submissionID string, reviewerID int) (bool, error) {
	var count int64
	err := l.db.Model(&models.ReviewAssignment{}).
		Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		Count(&count).Error
	if err != nil {
		return false, externalErr("database", err)
	}
	return count > 0, nil
}
