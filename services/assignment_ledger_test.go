package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"paper-submission-api/models"
)

func TestAssignmentLedgerCreateRejectsDuplicatePair(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .review_assignments. WHERE submission_id = \? AND reviewer_id = \?`),
			args:    []driver.Value{"sub-1", int64(7)},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	ledger := NewAssignmentLedger(db)
	err := ledger.Create(&models.ReviewAssignment{SubmissionID: "sub-1", ReviewerID: 7, AssignedBy: 99})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// The duplicate check must stop the insert; no INSERT step was scripted.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignmentLedgerCreateInsertsWhenPairIsFree(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .review_assignments. WHERE submission_id = \? AND reviewer_id = \?`),
			args:    []driver.Value{"sub-1", int64(7)},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .review_assignments.`),
			result:  scriptedResult{lastInsertID: 42, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	ledger := NewAssignmentLedger(db)
	a := &models.ReviewAssignment{SubmissionID: "sub-1", ReviewerID: 7, AssignedBy: 99}
	if err := ledger.Create(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.AssignmentID != 42 {
		t.Fatalf("expected assignment id 42, got %d", a.AssignmentID)
	}
	if a.Status != models.AssignmentPending {
		t.Fatalf("expected default status %q, got %q", models.AssignmentPending, a.Status)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignmentLedgerUpdateStatusNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .review_assignments. SET`),
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	ledger := NewAssignmentLedger(db)
	err := ledger.UpdateStatus(12, models.AssignmentCompleted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignmentLedgerFindByPairNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .review_assignments. WHERE submission_id = \? AND reviewer_id = \?`),
			columns: []string{"assignment_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	ledger := NewAssignmentLedger(db)
	_, err := ledger.FindByPair("sub-1", 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
