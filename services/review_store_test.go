package services

import (
	"database/sql/driver"
	"errors"
	"math"
	"regexp"
	"testing"

	"paper-submission-api/models"
)

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }

func TestComputeOverallScore(t *testing.T) {
	cases := []struct {
		name   string
		scores []*int
		want   *float64
	}{
		{"all present", []*int{intp(4), intp(5), intp(3), intp(4)}, floatp(4.0)},
		{"partial", []*int{intp(4), intp(5), nil, intp(3)}, floatp(4.0)},
		{"single", []*int{nil, intp(2), nil, nil}, floatp(2.0)},
		{"none", []*int{nil, nil, nil, nil}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeOverallScore(tc.scores)
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("expected nil, got %v", *got)
			case tc.want != nil && got == nil:
				t.Fatalf("expected %v, got nil", *tc.want)
			case tc.want != nil && math.Abs(*got-*tc.want) > 1e-9:
				t.Fatalf("expected %v, got %v", *tc.want, *got)
			}
		})
	}
}

func floatp(v float64) *float64 { return &v }

func TestMergeReviewKeepsStoredValuesForUnsetFields(t *testing.T) {
	stored := models.Review{
		SubmissionID:     "sub-1",
		ReviewerID:       7,
		ScoreOriginality: intp(4),
		ScoreMethodology: intp(3),
		Strengths:        strp("well motivated"),
	}

	mergeReview(&stored, models.ReviewSaveRequest{
		ScoreMethodology: intp(5),
		ScoreClarity:     intp(4),
		Weaknesses:       strp("limited evaluation"),
	})

	if got := *stored.ScoreOriginality; got != 4 {
		t.Fatalf("originality should be kept, got %d", got)
	}
	if got := *stored.ScoreMethodology; got != 5 {
		t.Fatalf("methodology should be replaced, got %d", got)
	}
	if stored.Strengths == nil || *stored.Strengths != "well motivated" {
		t.Fatalf("strengths should be kept, got %v", stored.Strengths)
	}
	if stored.Weaknesses == nil || *stored.Weaknesses != "limited evaluation" {
		t.Fatalf("weaknesses should be set, got %v", stored.Weaknesses)
	}

	// Mean over originality 4, methodology 5, clarity 4.
	if stored.OverallScore == nil || math.Abs(*stored.OverallScore-13.0/3.0) > 1e-9 {
		t.Fatalf("unexpected overall score %v", stored.OverallScore)
	}
}

func TestUpsertRejectsUnknownRecommendation(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	store := NewReviewStore(db)
	_, err := store.Upsert("sub-1", 7, models.ReviewSaveRequest{Recommendation: strp("strong_accept")})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestStatsQueriesOncePerSubmission(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COUNT\(\*\) AS total_reviews.+FROM .reviews. WHERE submission_id = \?`),
			columns: []string{"total_reviews", "completed_reviews", "accept_count", "reject_count", "revision_count", "average_score"},
			rows: [][]driver.Value{
				{int64(3), int64(2), int64(1), int64(0), int64(1), float64(4.25)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewReviewStore(db)

	stats, err := store.Stats("sub-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalReviews != 3 || stats.CompletedReviews != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.AcceptCount != 1 || stats.RejectCount != 0 || stats.RevisionCount != 1 {
		t.Fatalf("unexpected recommendation counts: %+v", stats)
	}
	if stats.AverageScore == nil || math.Abs(*stats.AverageScore-4.25) > 1e-9 {
		t.Fatalf("unexpected average score: %v", stats.AverageScore)
	}

	// Second call is served from the cache; no further query was scripted.
	cached, err := store.Stats("sub-1")
	if err != nil {
		t.Fatalf("unexpected error on cached read: %v", err)
	}
	if cached.TotalReviews != 3 {
		t.Fatalf("unexpected cached counts: %+v", cached)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
