package models

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		StatusDraft, StatusSubmitted, StatusUnderReview, StatusReviewComplete,
		StatusAccepted, StatusRejected, StatusRevisionRequested,
	} {
		if !ValidStatus(s) {
			t.Fatalf("%q should be a valid status", s)
		}
	}
	if ValidStatus("withdrawn") {
		t.Fatalf("unknown status accepted")
	}
}

func TestInReview(t *testing.T) {
	cases := map[string]bool{
		StatusDraft:             false,
		StatusSubmitted:         false,
		StatusUnderReview:       true,
		StatusReviewComplete:    true,
		StatusAccepted:          true,
		StatusRejected:          true,
		StatusRevisionRequested: true,
	}
	for status, want := range cases {
		sub := Submission{Status: status}
		if got := sub.InReview(); got != want {
			t.Fatalf("InReview for %q: got %v want %v", status, got, want)
		}
	}
}

func TestUpdateRequestFields(t *testing.T) {
	title := "New Title"
	keywords := "a, b"
	req := SubmissionUpdateRequest{Title: &title, Keywords: &keywords}

	fields := req.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(fields), fields)
	}
	if fields["title"] != "New Title" || fields["keywords"] != "a, b" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
