package services

import (
	"errors"
	"fmt"

	"paper-submission-api/models"

	"gorm.io/gorm"
)

// EventFinder resolves events for the eligibility gate.
type EventFinder interface {
	FindByID(id int) (*models.Event, error)
}

// UserFinder resolves users for reviewer validation and notification
// recipients.
type UserFinder interface {
	FindByID(id int) (*models.User, error)
}

type gormEventFinder struct {
	db *gorm.DB
}

// NewEventFinder returns the GORM-backed event finder.
func NewEventFinder(db *gorm.DB) EventFinder {
	return &gormEventFinder{db: db}
}

func (f *gormEventFinder) FindByID(id int) (*models.Event, error) {
	var event models.Event
	err := f.db.Where("event_id = ? AND delete_at IS NULL", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, id)
		}
		return nil, externalErr("database", err)
	}
	return &event, nil
}

type gormUserFinder struct {
	db *gorm.DB
}

// NewUserFinder returns the GORM-backed user finder.
func NewUserFinder(db *gorm.DB) UserFinder {
	return &gormUserFinder{db: db}
}

func (f *gormUserFinder) FindByID(id int) (*models.User, error) {
	var user models.User
	err := f.db.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, externalErr("database", err)
	}
	return &user, nil
}
