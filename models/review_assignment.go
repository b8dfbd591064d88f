package models

import "time"

// Review assignment statuses.
const (
	AssignmentPending    = "pending"
	AssignmentInProgress = "in_progress"
	AssignmentCompleted  = "completed"
)

// ReviewAssignment relates one reviewer to one submission. At most one
// assignment exists per (submission, reviewer) pair.
type ReviewAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID string     `gorm:"column:submission_id;uniqueIndex:idx_submission_reviewer" json:"submission_id"`
	ReviewerID   int        `gorm:"column:reviewer_id;uniqueIndex:idx_submission_reviewer" json:"reviewer_id"`
	AssignedBy   int        `gorm:"column:assigned_by" json:"assigned_by"`
	DueDate      *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Status       string     `gorm:"column:status" json:"status"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time  `gorm:"column:update_at" json:"update_at"`

	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Submission *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`
}

// TableName specifies the table name for ReviewAssignment.
func (ReviewAssignment) TableName() string {
	return "review_assignments"
}

// AssignReviewerRequest for creating review assignments
type AssignReviewerRequest struct {
	ReviewerID int        `json:"reviewer_id" binding:"required"`
	DueDate    *time.Time `json:"due_date"`
}
