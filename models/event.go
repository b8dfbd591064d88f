package models

import "time"

// Event represents a recurring conference/symposium edition that accepts paper submissions.
type Event struct {
	EventID             int        `gorm:"primaryKey;column:event_id" json:"event_id"`
	EventName           string     `gorm:"column:event_name" json:"event_name"`
	Description         *string    `gorm:"column:description" json:"description,omitempty"`
	Location            *string    `gorm:"column:location" json:"location,omitempty"`
	EventDate           time.Time  `gorm:"column:event_date" json:"event_date"`
	SubmissionStartDate time.Time  `gorm:"column:submission_start_date" json:"submission_start_date"`
	SubmissionEndDate   time.Time  `gorm:"column:submission_end_date" json:"submission_end_date"`
	CreatedBy           int        `gorm:"column:created_by" json:"created_by"`
	CreateAt            time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt            time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt            *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TableName specifies the table name for Event.
func (Event) TableName() string {
	return "events"
}

// SubmissionWindowOpen reports whether t falls inside the submission window
// and before the event itself has taken place.
func (e *Event) SubmissionWindowOpen(t time.Time) bool {
	if t.After(e.EventDate) {
		return false
	}
	return !t.Before(e.SubmissionStartDate) && !t.After(e.SubmissionEndDate)
}

// EventCreateRequest for creating events
type EventCreateRequest struct {
	EventName           string    `json:"event_name" binding:"required"`
	Description         *string   `json:"description"`
	Location            *string   `json:"location"`
	EventDate           time.Time `json:"event_date" binding:"required"`
	SubmissionStartDate time.Time `json:"submission_start_date" binding:"required"`
	SubmissionEndDate   time.Time `json:"submission_end_date" binding:"required"`
}

type EventUpdateRequest struct {
	EventName           *string    `json:"event_name"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location"`
	EventDate           *time.Time `json:"event_date"`
	SubmissionStartDate *time.Time `json:"submission_start_date"`
	SubmissionEndDate   *time.Time `json:"submission_end_date"`
}

// EffectiveWindow returns the submission window the update would leave on the
// event, merging the request over the stored dates.
func (r EventUpdateRequest) EffectiveWindow(e *Event) (start, end time.Time) {
	start = e.SubmissionStartDate
	if r.SubmissionStartDate != nil {
		start = *r.SubmissionStartDate
	}
	end = e.SubmissionEndDate
	if r.SubmissionEndDate != nil {
		end = *r.SubmissionEndDate
	}
	return start, end
}
