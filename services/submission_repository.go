package services

import (
	"errors"
	"fmt"
	"time"

	"paper-submission-api/models"

	"gorm.io/gorm"
)

// SubmissionRepository owns Submission rows and their status field.
// UpdateStatus is the single channel through which the status column
// changes; every write is a single atomic UPDATE.
type SubmissionRepository interface {
	Create(sub *models.Submission) error
	FindByID(id string) (*models.Submission, error)
	FindByUserAndEvent(userID, eventID int) (*models.Submission, error)
	ListForUser(userID int) ([]models.Submission, error)
	ListAll() ([]models.Submission, error)
	UpdateFields(id string, fields map[string]interface{}) error
	UpdateStatus(id string, status string) error
	Delete(id string) error
	AppendStatusHistory(h *models.SubmissionStatusHistory) error
}

type gormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository returns the GORM-backed submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &gormSubmissionRepository{db: db}
}

func (r *gormSubmissionRepository) Create(sub *models.Submission) error {
	now := time.Now()
	sub.CreateAt = now
	sub.UpdateAt = now
	if err := r.db.Create(sub).Error; err != nil {
		return externalErr("database", err)
	}
	return nil
}

func (r *gormSubmissionRepository) FindByID(id string) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.Preload("User").Preload("Event").
		Where("submission_id = ?", id).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: submission %s", ErrNotFound, id)
		}
		return nil, externalErr("database", err)
	}
	return &sub, nil
}

// FindByUserAndEvent is an existence probe for the one-submission-per-event
// rule; an absent row is a normal result, not a failure.
func (r *gormSubmissionRepository) FindByUserAndEvent(userID, eventID int) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, externalErr("database", err)
	}
	return &sub, nil
}

func (r *gormSubmissionRepository) ListForUser(userID int) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.Preload("Event").
		Where("user_id = ?", userID).
		Order("create_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, externalErr("database", err)
	}
	return subs, nil
}

func (r *gormSubmissionRepository) ListAll() ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.Preload("User").Preload("Event").
		Order("create_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, externalErr("database", err)
	}
	return subs, nil
}

func (r *gormSubmissionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["update_at"] = time.Now()
	res := r.db.Model(&models.Submission{}).
		Where("submission_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return externalErr("database", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: submission %s", ErrNotFound, id)
	}
	return nil
}

func (r *gormSubmissionRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Submission{}).
		Where("submission_id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"update_at": time.Now(),
		})
	if res.Error != nil {
		return externalErr("database", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: submission %s", ErrNotFound, id)
	}
	return nil
}

func (r *gormSubmissionRepository) Delete(id string) error {
	res := r.db.Where("submission_id = ?", id).Delete(&models.Submission{})
	if res.Error != nil {
		return externalErr("database", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: submission %s", ErrNotFound, id)
	}
	return nil
}

func (r *gormSubmissionRepository) AppendStatusHistory(h *models.SubmissionStatusHistory) error {
	h.CreatedAt = time.Now()
	if err := r.db.Create(h).Error; err != nil {
		return externalErr("database", err)
	}
	return nil
}
