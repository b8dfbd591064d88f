package models

import "time"

// Submission lifecycle statuses.
const (
	StatusDraft             = "draft"
	StatusSubmitted         = "submitted"
	StatusUnderReview       = "under_review"
	StatusReviewComplete    = "review_complete"
	StatusAccepted          = "accepted"
	StatusRejected          = "rejected"
	StatusRevisionRequested = "revision_requested"
)

// ValidStatus reports whether s is one of the known submission statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusReviewComplete,
		StatusAccepted, StatusRejected, StatusRevisionRequested:
		return true
	}
	return false
}

// Submission represents one paper submitted to one event by one author.
type Submission struct {
	SubmissionID        string     `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	EventID             int        `gorm:"column:event_id" json:"event_id"`
	UserID              int        `gorm:"column:user_id" json:"user_id"`
	Title               string     `gorm:"column:title" json:"title"`
	Abstract            string     `gorm:"column:abstract" json:"abstract"`
	Keywords            string     `gorm:"column:keywords" json:"keywords"`
	CorrespondingAuthor string     `gorm:"column:corresponding_author" json:"corresponding_author"`
	CoAuthors           *string    `gorm:"column:co_authors" json:"co_authors,omitempty"`
	ArtifactURL         string     `gorm:"column:artifact_url" json:"artifact_url"`
	ArtifactFilename    string     `gorm:"column:artifact_filename" json:"artifact_filename"`
	ArtifactSize        int64      `gorm:"column:artifact_size" json:"artifact_size"`
	Status              string     `gorm:"column:status" json:"status"`
	SubmittedAt         *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt            time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt            time.Time  `gorm:"column:update_at" json:"update_at"`

	// Relations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// TableName specifies the table name for Submission.
func (Submission) TableName() string {
	return "submissions"
}

// InReview reports whether review work has started or concluded for the
// submission. Owners may no longer delete it past this point.
func (s *Submission) InReview() bool {
	switch s.Status {
	case StatusUnderReview, StatusReviewComplete, StatusAccepted, StatusRejected, StatusRevisionRequested:
		return true
	}
	return false
}

// Decided reports whether an administrative decision has been recorded.
func (s *Submission) Decided() bool {
	return s.Status == StatusAccepted || s.Status == StatusRejected
}

// SubmissionUpdateRequest carries a partial update; nil fields keep their
// stored values.
type SubmissionUpdateRequest struct {
	Title               *string `json:"title"`
	Abstract            *string `json:"abstract"`
	Keywords            *string `json:"keywords"`
	CorrespondingAuthor *string `json:"corresponding_author"`
	CoAuthors           *string `json:"co_authors"`
}

// Fields converts the request into a column map for a partial update.
func (r SubmissionUpdateRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Abstract != nil {
		fields["abstract"] = *r.Abstract
	}
	if r.Keywords != nil {
		fields["keywords"] = *r.Keywords
	}
	if r.CorrespondingAuthor != nil {
		fields["corresponding_author"] = *r.CorrespondingAuthor
	}
	if r.CoAuthors != nil {
		fields["co_authors"] = *r.CoAuthors
	}
	return fields
}

// SubmissionResponse is the caller-facing shape of a submission.
type SubmissionResponse struct {
	SubmissionID        string     `json:"submission_id"`
	EventID             int        `json:"event_id"`
	EventName           string     `json:"event_name,omitempty"`
	UserID              int        `json:"user_id"`
	AuthorName          string     `json:"author_name,omitempty"`
	Title               string     `json:"title"`
	Abstract            string     `json:"abstract"`
	Keywords            string     `json:"keywords"`
	CorrespondingAuthor string     `json:"corresponding_author"`
	CoAuthors           *string    `json:"co_authors,omitempty"`
	ArtifactURL         string     `json:"artifact_url"`
	ArtifactFilename    string     `json:"artifact_filename"`
	ArtifactSize        int64      `json:"artifact_size"`
	Status              string     `json:"status"`
	SubmittedAt         *time.Time `json:"submitted_at,omitempty"`
	CreateAt            time.Time  `json:"create_at"`
	UpdateAt            time.Time  `json:"update_at"`
}

// ToResponse converts a Submission to its response shape.
func (s *Submission) ToResponse() SubmissionResponse {
	resp := SubmissionResponse{
		SubmissionID:        s.SubmissionID,
		EventID:             s.EventID,
		UserID:              s.UserID,
		Title:               s.Title,
		Abstract:            s.Abstract,
		Keywords:            s.Keywords,
		CorrespondingAuthor: s.CorrespondingAuthor,
		CoAuthors:           s.CoAuthors,
		ArtifactURL:         s.ArtifactURL,
		ArtifactFilename:    s.ArtifactFilename,
		ArtifactSize:        s.ArtifactSize,
		Status:              s.Status,
		SubmittedAt:         s.SubmittedAt,
		CreateAt:            s.CreateAt,
		UpdateAt:            s.UpdateAt,
	}
	if s.User != nil {
		resp.AuthorName = s.User.FullName()
	}
	if s.Event != nil {
		resp.EventName = s.Event.EventName
	}
	return resp
}
