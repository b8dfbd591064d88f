package services

import (
	"errors"
	"fmt"
	"time"

	"paper-submission-api/models"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const statsCacheTTL = 5 * time.Minute

// ReviewStore owns one Review row per (submission, reviewer) pair with
// upsert semantics. Unset component scores on an update keep their stored
// values; overall_score is recomputed from the merged result on every write.
type ReviewStore interface {
	Upsert(submissionID string, reviewerID int, req models.ReviewSaveRequest) (*models.Review, error)
	FindBySubmission(submissionID string) ([]models.Review, error)
	FindByPair(submissionID string, reviewerID int) (*models.Review, error)
	Stats(submissionID string) (*models.ReviewStats, error)
}

type gormReviewStore struct {
	db    *gorm.DB
	stats *gocache.Cache
}

// NewReviewStore returns the GORM-backed review store with a TTL cache over
// per-submission statistics.
func NewReviewStore(db *gorm.DB) ReviewStore {
	return &gormReviewStore{
		db:    db,
		stats: gocache.New(statsCacheTTL, 2*statsCacheTTL),
	}
}

// ComputeOverallScore derives the overall score as the arithmetic mean of
// whichever component scores are present; nil when none are.
func ComputeOverallScore(scores []*int) *float64 {
	sum, n := 0, 0
	for _, s := range scores {
		if s != nil {
			sum += *s
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := float64(sum) / float64(n)
	return &mean
}

// mergeReview folds a save request into the stored review. Nil request
// fields keep the stored values.
func mergeReview(stored *models.Review, req models.ReviewSaveRequest) {
	if req.ScoreOriginality != nil {
		stored.ScoreOriginality = req.ScoreOriginality
	}
	if req.ScoreMethodology != nil {
		stored.ScoreMethodology = req.ScoreMethodology
	}
	if req.ScoreClarity != nil {
		stored.ScoreClarity = req.ScoreClarity
	}
	if req.ScoreContribution != nil {
		stored.ScoreContribution = req.ScoreContribution
	}
	if req.Strengths != nil {
		stored.Strengths = req.Strengths
	}
	if req.Weaknesses != nil {
		stored.Weaknesses = req.Weaknesses
	}
	if req.CommentsToAuthor != nil {
		stored.CommentsToAuthor = req.CommentsToAuthor
	}
	if req.CommentsToCommittee != nil {
		stored.CommentsToCommittee = req.CommentsToCommittee
	}
	if req.Recommendation != nil {
		stored.Recommendation = req.Recommendation
	}
	stored.OverallScore = ComputeOverallScore(stored.ComponentScores())
}

func (s *gormReviewStore) Upsert(submissionID string, reviewerID int, req models.ReviewSaveRequest) (*models.Review, error) {
	if req.Recommendation != nil && !models.ValidRecommendation(*req.Recommendation) {
		return nil, fmt.Errorf("%w: unknown recommendation %q", ErrInvalidState, *req.Recommendation)
	}

	now := time.Now()
	var review models.Review
	err := s.db.Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		First(&review).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{
			SubmissionID: submissionID,
			ReviewerID:   reviewerID,
			CreateAt:     now,
		}
		mergeReview(&review, req)
		review.IsCompleted = req.Complete
		if req.Complete {
			review.CompletedAt = &now
		}
		review.UpdateAt = now
		if err := s.db.Create(&review).Error; err != nil {
			return nil, externalErr("database", err)
		}
	case err != nil:
		return nil, externalErr("database", err)
	default:
		mergeReview(&review, req)
		if req.Complete && !review.IsCompleted {
			review.IsCompleted = true
			review.CompletedAt = &now
		}
		review.UpdateAt = now
		if err := s.db.Save(&review).Error; err != nil {
			return nil, externalErr("database", err)
		}
	}

	s.stats.Delete(submissionID)
	return &review, nil
}

func (s *gormReviewStore) FindBySubmission(submissionID string) ([]models.Review, error) {
	var rows []models.Review
	err := s.db.Preload("Reviewer").
		Where("submission_id = ?", submissionID).
		Order("create_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, externalErr("database", err)
	}
	return rows, nil
}

func (s *gormReviewStore) FindByPair(submissionID string, reviewerID int) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no review by reviewer %d on submission %s",
				ErrNotFound, reviewerID, submissionID)
		}
		return nil, externalErr("database", err)
	}
	return &review, nil
}

// Stats aggregates review counts and the mean overall score for one
// submission. Results are cached briefly; Upsert invalidates the entry.
func (s *gormReviewStore) Stats(submissionID string) (*models.ReviewStats, error) {
	if cached, ok := s.stats.Get(submissionID); ok {
		stats := cached.(models.ReviewStats)
		return &stats, nil
	}

	var row struct {
		TotalReviews     int64
		CompletedReviews int64
		AcceptCount      int64
		RejectCount      int64
		RevisionCount    int64
		AverageScore     *float64
	}
	err := s.db.Model(&models.Review{}).
		Select(
			"COUNT(*) AS total_reviews, "+
				"SUM(CASE WHEN is_completed THEN 1 ELSE 0 END) AS completed_reviews, "+
				"SUM(CASE WHEN is_completed AND recommendation = ? THEN 1 ELSE 0 END) AS accept_count, "+
				"SUM(CASE WHEN is_completed AND recommendation = ? THEN 1 ELSE 0 END) AS reject_count, "+
				"SUM(CASE WHEN is_completed AND recommendation IN (?, ?) THEN 1 ELSE 0 END) AS revision_count, "+
				"AVG(CASE WHEN is_completed THEN overall_score END) AS average_score",
			models.RecommendAccept,
			models.RecommendReject,
			models.RecommendMajorRevision,
			models.RecommendMinorRevision,
		).
		Where("submission_id = ?", submissionID).
		Scan(&row).Error
	if err != nil {
		return nil, externalErr("database", err)
	}

	stats := models.ReviewStats{
		SubmissionID:     submissionID,
		TotalReviews:     row.TotalReviews,
		CompletedReviews: row.CompletedReviews,
		AcceptCount:      row.AcceptCount,
		RejectCount:      row.RejectCount,
		RevisionCount:    row.RevisionCount,
		AverageScore:     row.AverageScore,
	}
	s.stats.Set(submissionID, stats, statsCacheTTL)
	return &stats, nil
}
