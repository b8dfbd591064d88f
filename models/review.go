package models

import "time"

// Reviewer recommendations.
const (
	RecommendAccept        = "accept"
	RecommendReject        = "reject"
	RecommendMajorRevision = "major_revision"
	RecommendMinorRevision = "minor_revision"
)

// ValidRecommendation reports whether r is a known recommendation value.
func ValidRecommendation(r string) bool {
	switch r {
	case RecommendAccept, RecommendReject, RecommendMajorRevision, RecommendMinorRevision:
		return true
	}
	return false
}

// Review is a reviewer's scored evaluation of one submission. The pair
// (submission_id, reviewer_id) is the natural key; repeated saves update the
// same row. OverallScore is derived from the stored component scores on every
// write and is never set independently.
type Review struct {
	SubmissionID        string     `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	ReviewerID          int        `gorm:"primaryKey;column:reviewer_id" json:"reviewer_id"`
	ScoreOriginality    *int       `gorm:"column:score_originality" json:"score_originality,omitempty"`
	ScoreMethodology    *int       `gorm:"column:score_methodology" json:"score_methodology,omitempty"`
	ScoreClarity        *int       `gorm:"column:score_clarity" json:"score_clarity,omitempty"`
	ScoreContribution   *int       `gorm:"column:score_contribution" json:"score_contribution,omitempty"`
	OverallScore        *float64   `gorm:"column:overall_score" json:"overall_score,omitempty"`
	Strengths           *string    `gorm:"column:strengths" json:"strengths,omitempty"`
	Weaknesses          *string    `gorm:"column:weaknesses" json:"weaknesses,omitempty"`
	CommentsToAuthor    *string    `gorm:"column:comments_to_author" json:"comments_to_author,omitempty"`
	CommentsToCommittee *string    `gorm:"column:comments_to_committee" json:"comments_to_committee,omitempty"`
	Recommendation      *string    `gorm:"column:recommendation" json:"recommendation,omitempty"`
	IsCompleted         bool       `gorm:"column:is_completed" json:"is_completed"`
	CompletedAt         *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreateAt            time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt            time.Time  `gorm:"column:update_at" json:"update_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for Review.
func (Review) TableName() string {
	return "reviews"
}

// ComponentScores returns the four component scores in a fixed order.
func (r *Review) ComponentScores() []*int {
	return []*int{r.ScoreOriginality, r.ScoreMethodology, r.ScoreClarity, r.ScoreContribution}
}

// ReviewSaveRequest carries a reviewer's (possibly partial) review. Nil score
// fields keep whatever is already stored for that component.
type ReviewSaveRequest struct {
	ScoreOriginality    *int    `json:"score_originality" binding:"omitempty,min=1,max=5"`
	ScoreMethodology    *int    `json:"score_methodology" binding:"omitempty,min=1,max=5"`
	ScoreClarity        *int    `json:"score_clarity" binding:"omitempty,min=1,max=5"`
	ScoreContribution   *int    `json:"score_contribution" binding:"omitempty,min=1,max=5"`
	Strengths           *string `json:"strengths"`
	Weaknesses          *string `json:"weaknesses"`
	CommentsToAuthor    *string `json:"comments_to_author"`
	CommentsToCommittee *string `json:"comments_to_committee"`
	Recommendation      *string `json:"recommendation" binding:"omitempty,oneof=accept reject major_revision minor_revision"`
	Complete            bool    `json:"complete"`
}

// ReviewStats aggregates the reviews of one submission for administrative
// summaries.
type ReviewStats struct {
	SubmissionID     string   `json:"submission_id"`
	TotalReviews     int64    `json:"total_reviews"`
	CompletedReviews int64    `json:"completed_reviews"`
	AcceptCount      int64    `json:"accept_count"`
	RejectCount      int64    `json:"reject_count"`
	RevisionCount    int64    `json:"revision_count"`
	AverageScore     *float64 `json:"average_score,omitempty"`
}
