package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"paper-submission-api/models"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a workflow operation.
type Actor struct {
	UserID int
	RoleID int
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.RoleID == models.RoleAdmin
}

// ArtifactUpload carries an uploaded paper file into the workflow layer.
type ArtifactUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// CreateSubmissionRequest carries everything needed to create a submission.
type CreateSubmissionRequest struct {
	EventID             int
	Title               string
	Abstract            string
	Keywords            string
	CorrespondingAuthor string
	CoAuthors           *string
	Status              string // "" or "submitted" to submit immediately, "draft" to hold
	Artifact            *ArtifactUpload
}

// WorkflowService coordinates the submission repository, the assignment
// ledger, the review store and the artifact store to enforce the submission
// state machine, the consensus rule, and rollback of artifacts on partial
// failure. It is the only component that writes submission statuses.
type WorkflowService struct {
	submissions SubmissionRepository
	assignments AssignmentLedger
	reviews     ReviewStore
	artifacts   ArtifactStore
	events      EventFinder
	users       UserFinder
	notifier    Notifier
	now         func() time.Time
}

// NewWorkflowService wires the orchestrator. The notifier is injected here
// once at process start; there is no global mail transporter.
func NewWorkflowService(
	submissions SubmissionRepository,
	assignments AssignmentLedger,
	reviews ReviewStore,
	artifacts ArtifactStore,
	events EventFinder,
	users UserFinder,
	notifier Notifier,
) *WorkflowService {
	return &WorkflowService{
		submissions: submissions,
		assignments: assignments,
		reviews:     reviews,
		artifacts:   artifacts,
		events:      events,
		users:       users,
		notifier:    notifier,
		now:         time.Now,
	}
}

// ===================== ELIGIBILITY =====================

// CanSubmit reports whether the user may create a submission for the event:
// the event has not yet taken place, the current time is inside the
// submission window, and the user has no existing submission for the event.
func (s *WorkflowService) CanSubmit(userID, eventID int) (bool, string, error) {
	err := s.checkEligibility(userID, eventID)
	switch {
	case err == nil:
		return true, "", nil
	case errors.Is(err, ErrForbidden) || errors.Is(err, ErrConflict):
		return false, err.Error(), nil
	default:
		return false, "", err
	}
}

// checkEligibility returns ErrForbidden for window violations and
// ErrConflict for an existing submission.
func (s *WorkflowService) checkEligibility(userID, eventID int) error {
	event, err := s.events.FindByID(eventID)
	if err != nil {
		return err
	}

	now := s.now()
	if !event.SubmissionWindowOpen(now) {
		switch {
		case now.After(event.EventDate):
			return fmt.Errorf("%w: the event has already taken place", ErrForbidden)
		case now.Before(event.SubmissionStartDate):
			return fmt.Errorf("%w: the submission window has not opened yet", ErrForbidden)
		default:
			return fmt.Errorf("%w: the submission window has closed", ErrForbidden)
		}
	}

	existing, err := s.submissions.FindByUserAndEvent(userID, eventID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: you already have a submission for this event", ErrConflict)
	}
	return nil
}

// ===================== SUBMISSION LIFECYCLE =====================

// CreateSubmission uploads the artifact first and inserts the database row
// second. When the insert fails the now-orphaned blob is deleted best-effort
// and the original database error is returned to the caller.
func (s *WorkflowService) CreateSubmission(actor Actor, req CreateSubmissionRequest) (*models.Submission, error) {
	if err := s.checkEligibility(actor.UserID, req.EventID); err != nil {
		return nil, err
	}

	if req.Artifact == nil {
		return nil, fmt.Errorf("%w: a PDF artifact is required", ErrInvalidState)
	}

	status := models.StatusSubmitted
	if req.Status == models.StatusDraft {
		status = models.StatusDraft
	}

	ref, err := s.artifacts.Put(req.Artifact.Reader, req.Artifact.Filename, req.Artifact.ContentType, req.Artifact.Size)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub := &models.Submission{
		SubmissionID:        uuid.NewString(),
		EventID:             req.EventID,
		UserID:              actor.UserID,
		Title:               req.Title,
		Abstract:            req.Abstract,
		Keywords:            req.Keywords,
		CorrespondingAuthor: req.CorrespondingAuthor,
		CoAuthors:           req.CoAuthors,
		ArtifactURL:         ref.URL,
		ArtifactFilename:    ref.Filename,
		ArtifactSize:        ref.Size,
		Status:              status,
	}
	if status == models.StatusSubmitted {
		sub.SubmittedAt = &now
	}

	if err := s.submissions.Create(sub); err != nil {
		// Clean up the orphaned blob; the DB error stays the caller's error.
		if derr := s.artifacts.Delete(ref.URL); derr != nil {
			log.Printf("Warning: failed to clean up orphaned artifact %s: %v", ref.URL, derr)
		}
		return nil, err
	}

	s.appendHistory(sub.SubmissionID, "", status, actor.UserID, nil, "submission_created")

	if status == models.StatusSubmitted {
		s.notifyAuthor(sub, NotifySubmissionSubmitted)
	}
	return sub, nil
}

// GetSubmission returns the submission when the actor is its owner, an
// administrator, or a reviewer holding an assignment for it.
func (s *WorkflowService) GetSubmission(actor Actor, id string) (*models.Submission, error) {
	sub, err := s.submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sub.UserID == actor.UserID || actor.IsAdmin() {
		return sub, nil
	}
	assigned, err := s.assignments.IsAssigned(id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, fmt.Errorf("%w: you do not have access to this submission", ErrForbidden)
	}
	return sub, nil
}

// UpdateSubmission applies a partial field update. With a replacement
// artifact the new blob is uploaded and durably referenced before the old
// blob is deleted, so the submission never points at a deleted blob.
func (s *WorkflowService) UpdateSubmission(actor Actor, id string, req models.SubmissionUpdateRequest, upload *ArtifactUpload) (*models.Submission, error) {
	sub, err := s.submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the owner or an administrator may update a submission", ErrForbidden)
	}

	fields := req.Fields()

	var newRef *ArtifactRef
	if upload != nil {
		newRef, err = s.artifacts.Put(upload.Reader, upload.Filename, upload.ContentType, upload.Size)
		if err != nil {
			return nil, err
		}
		fields["artifact_url"] = newRef.URL
		fields["artifact_filename"] = newRef.Filename
		fields["artifact_size"] = newRef.Size
	}

	if err := s.submissions.UpdateFields(id, fields); err != nil {
		if newRef != nil {
			if derr := s.artifacts.Delete(newRef.URL); derr != nil {
				log.Printf("Warning: failed to clean up replacement artifact %s: %v", newRef.URL, derr)
			}
		}
		return nil, err
	}

	// The new reference is stored; only now is the old blob safe to drop.
	if newRef != nil && sub.ArtifactURL != "" {
		if derr := s.artifacts.Delete(sub.ArtifactURL); derr != nil {
			log.Printf("Warning: failed to delete replaced artifact %s: %v", sub.ArtifactURL, derr)
		}
	}

	return s.submissions.FindByID(id)
}

// DeleteSubmission removes the database row first and the blob second. A
// blob deletion failure is logged but does not resurrect the row. Owners may
// not delete once review work has started or a decision has been recorded.
func (s *WorkflowService) DeleteSubmission(actor Actor, id string) error {
	sub, err := s.submissions.FindByID(id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		if sub.UserID != actor.UserID {
			return fmt.Errorf("%w: only the owner or an administrator may delete a submission", ErrForbidden)
		}
		if sub.InReview() {
			return fmt.Errorf("%w: submission is in review or decided and can only be deleted by an administrator", ErrForbidden)
		}
	}

	if err := s.submissions.Delete(id); err != nil {
		return err
	}

	if sub.ArtifactURL != "" {
		if derr := s.artifacts.Delete(sub.ArtifactURL); derr != nil {
			log.Printf("Warning: failed to delete artifact %s of removed submission %s: %v", sub.ArtifactURL, id, derr)
		}
	}
	return nil
}

// SubmitDraft moves an owner's draft to submitted.
func (s *WorkflowService) SubmitDraft(actor Actor, id string) (*models.Submission, error) {
	sub, err := s.submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the owner may submit this draft", ErrForbidden)
	}
	if sub.Status != models.StatusDraft {
		return nil, fmt.Errorf("%w: submission is not a draft", ErrInvalidState)
	}

	now := s.now()
	if err := s.submissions.UpdateFields(id, map[string]interface{}{"submitted_at": now}); err != nil {
		return nil, err
	}
	if err := s.submissions.UpdateStatus(id, models.StatusSubmitted); err != nil {
		return nil, err
	}
	s.appendHistory(id, sub.Status, models.StatusSubmitted, actor.UserID, nil, "draft_submitted")

	sub.Status = models.StatusSubmitted
	sub.SubmittedAt = &now
	s.notifyAuthor(sub, NotifySubmissionSubmitted)
	return sub, nil
}

// ===================== REVIEWER ASSIGNMENT =====================

// AssignReviewer creates the assignment and, when it is the first reviewer
// on a submitted submission, advances the submission to under_review.
func (s *WorkflowService) AssignReviewer(actor Actor, submissionID string, reviewerID int, dueDate *time.Time) (*models.ReviewAssignment, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators may assign reviewers", ErrForbidden)
	}

	sub, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	reviewer, err := s.users.FindByID(reviewerID)
	if err != nil {
		return nil, err
	}

	assignment := &models.ReviewAssignment{
		SubmissionID: submissionID,
		ReviewerID:   reviewerID,
		AssignedBy:   actor.UserID,
		DueDate:      dueDate,
		Status:       models.AssignmentPending,
	}
	if err := s.assignments.Create(assignment); err != nil {
		return nil, err
	}

	if sub.Status == models.StatusSubmitted {
		if err := s.submissions.UpdateStatus(submissionID, models.StatusUnderReview); err != nil {
			return nil, err
		}
		s.appendHistory(submissionID, sub.Status, models.StatusUnderReview, actor.UserID, nil, "first_reviewer_assigned")
	}

	payload := s.submissionPayload(sub, reviewer.FullName())
	if dueDate != nil {
		payload["due_date"] = dueDate.Format("2006-01-02")
	}
	s.notifySafe(NotifyReviewerAssigned, reviewer.Email, payload)

	return assignment, nil
}

// RemoveReviewer releases the reviewer's obligation and re-evaluates
// consensus: dropping the last outstanding assignment can complete the
// review. It never retroactively changes a submission that has already
// reached review_complete.
func (s *WorkflowService) RemoveReviewer(actor Actor, submissionID string, reviewerID int) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only administrators may remove reviewers", ErrForbidden)
	}
	assignment, err := s.assignments.FindByPair(submissionID, reviewerID)
	if err != nil {
		return err
	}
	if err := s.assignments.Delete(assignment.AssignmentID); err != nil {
		return err
	}

	sub, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return err
	}
	switch sub.Status {
	case models.StatusSubmitted, models.StatusUnderReview:
	default:
		return nil
	}

	remaining, err := s.assignments.FindBySubmission(submissionID)
	if err != nil {
		return err
	}
	// No assignments means no reviews to base a consensus on.
	if len(remaining) == 0 {
		return nil
	}
	for _, a := range remaining {
		if a.Status != models.AssignmentCompleted {
			return nil
		}
	}
	return s.advanceToReviewComplete(sub, actor.UserID)
}

// ===================== REVIEWS & CONSENSUS =====================

// SaveReview upserts the reviewer's review. Completing a review marks the
// assignment completed and runs the consensus evaluation; a review that was
// already completed may still be edited, but the edit does not re-trigger
// consensus (status changes are frozen forward-only).
func (s *WorkflowService) SaveReview(actor Actor, submissionID string, req models.ReviewSaveRequest) (*models.Review, error) {
	assignment, err := s.assignments.FindByPair(submissionID, actor.UserID)
	if err != nil {
		if IsExternal(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: you are not assigned to review this submission", ErrForbidden)
	}

	sub, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}

	wasCompleted := false
	if prior, perr := s.reviews.FindByPair(submissionID, actor.UserID); perr == nil {
		wasCompleted = prior.IsCompleted
	} else if IsExternal(perr) {
		return nil, perr
	}

	review, err := s.reviews.Upsert(submissionID, actor.UserID, req)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Complete && !wasCompleted:
		if err := s.completeAssignment(sub, assignment); err != nil {
			return nil, err
		}
	case !req.Complete && assignment.Status == models.AssignmentPending:
		if err := s.assignments.UpdateStatus(assignment.AssignmentID, models.AssignmentInProgress); err != nil {
			return nil, err
		}
	}

	return review, nil
}

// completeAssignment marks the triggering assignment completed and evaluates
// consensus. The triggering assignment counts as completed unconditionally
// rather than being re-read, so a lagging read can never stall the
// transition; the resulting status moves are idempotent and monotonic.
func (s *WorkflowService) completeAssignment(sub *models.Submission, triggering *models.ReviewAssignment) error {
	if triggering.Status != models.AssignmentCompleted {
		if err := s.assignments.UpdateStatus(triggering.AssignmentID, models.AssignmentCompleted); err != nil {
			return err
		}
	}

	all, err := s.assignments.FindBySubmission(sub.SubmissionID)
	if err != nil {
		return err
	}

	allCompleted := true
	for _, a := range all {
		if a.AssignmentID == triggering.AssignmentID {
			continue
		}
		if a.Status != models.AssignmentCompleted {
			allCompleted = false
			break
		}
	}

	// Submissions already moved past under_review by administrative action
	// are left alone.
	switch sub.Status {
	case models.StatusSubmitted:
		if allCompleted {
			return s.advanceToReviewComplete(sub, triggering.ReviewerID)
		}
		if err := s.submissions.UpdateStatus(sub.SubmissionID, models.StatusUnderReview); err != nil {
			return err
		}
		s.appendHistory(sub.SubmissionID, sub.Status, models.StatusUnderReview, triggering.ReviewerID, nil, "first_review_completed")
	case models.StatusUnderReview:
		if allCompleted {
			return s.advanceToReviewComplete(sub, triggering.ReviewerID)
		}
	}
	return nil
}

func (s *WorkflowService) advanceToReviewComplete(sub *models.Submission, changedBy int) error {
	if err := s.submissions.UpdateStatus(sub.SubmissionID, models.StatusReviewComplete); err != nil {
		return err
	}
	s.appendHistory(sub.SubmissionID, sub.Status, models.StatusReviewComplete, changedBy, nil, "all_reviews_completed")
	s.notifyAuthor(sub, NotifyReviewCompleted)
	return nil
}

// ===================== ADMINISTRATIVE DECISIONS =====================

// Decision values accepted by AdminDecision.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
	DecisionRevise = "revise"
)

// AdminDecision records the committee's decision. Accept and reject require
// the submission to have completed review; a revision may also be requested
// while reviews are still in flight.
func (s *WorkflowService) AdminDecision(actor Actor, submissionID, decision string, comment *string) (*models.Submission, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators may record decisions", ErrForbidden)
	}

	sub, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}

	var target, kind string
	switch decision {
	case DecisionAccept:
		target, kind = models.StatusAccepted, NotifyDecisionAccepted
		if sub.Status != models.StatusReviewComplete {
			return nil, fmt.Errorf("%w: submission must complete review before it can be accepted", ErrInvalidState)
		}
	case DecisionReject:
		target, kind = models.StatusRejected, NotifyDecisionRejected
		if sub.Status != models.StatusReviewComplete {
			return nil, fmt.Errorf("%w: submission must complete review before it can be rejected", ErrInvalidState)
		}
	case DecisionRevise:
		target, kind = models.StatusRevisionRequested, NotifyRevisionRequested
		if sub.Status != models.StatusUnderReview && sub.Status != models.StatusReviewComplete {
			return nil, fmt.Errorf("%w: a revision can only be requested while the submission is in review", ErrInvalidState)
		}
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", ErrInvalidState, decision)
	}

	if err := s.submissions.UpdateStatus(submissionID, target); err != nil {
		return nil, err
	}
	s.appendHistory(submissionID, sub.Status, target, actor.UserID, comment, "admin_decision:"+decision)

	sub.Status = target
	s.notifyAuthor(sub, kind)
	return sub, nil
}

// OverrideStatus is the administrative escape hatch: it may move a
// submission to any status and is always recorded in the status history.
func (s *WorkflowService) OverrideStatus(actor Actor, submissionID, status string, reason *string) (*models.Submission, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators may override submission status", ErrForbidden)
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidState, status)
	}

	sub, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if err := s.submissions.UpdateStatus(submissionID, status); err != nil {
		return nil, err
	}
	s.appendHistory(submissionID, sub.Status, status, actor.UserID, reason, "admin_override")
	log.Printf("Admin %d overrode submission %s status: %s -> %s", actor.UserID, submissionID, sub.Status, status)

	sub.Status = status
	return sub, nil
}

// SendDecisionEmail re-sends the decision notification. It is only valid
// once the submission carries a terminal decision.
func (s *WorkflowService) SendDecisionEmail(actor Actor, submissionID string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only administrators may send decision notifications", ErrForbidden)
	}
	sub, err := s.submissions.FindByID(submissionID)
	if err != nil {
		return err
	}
	if !sub.Decided() {
		return fmt.Errorf("%w: no decision has been recorded for this submission", ErrInvalidState)
	}
	kind := NotifyDecisionRejected
	if sub.Status == models.StatusAccepted {
		kind = NotifyDecisionAccepted
	}
	s.notifyAuthor(sub, kind)
	return nil
}

// ===================== HELPERS =====================

func (s *WorkflowService) appendHistory(submissionID, oldStatus, newStatus string, changedBy int, reason *string, note string) {
	h := &models.SubmissionStatusHistory{
		SubmissionID: submissionID,
		NewStatus:    newStatus,
		ChangedBy:    changedBy,
		Reason:       reason,
	}
	if oldStatus != "" {
		h.OldStatus = &oldStatus
	}
	if note != "" {
		h.Notes = &note
	}
	if err := s.submissions.AppendStatusHistory(h); err != nil {
		log.Printf("Warning: failed to record status history for submission %s: %v", submissionID, err)
	}
}

// notifyAuthor resolves the submission owner and sends best-effort mail.
func (s *WorkflowService) notifyAuthor(sub *models.Submission, kind string) {
	author, err := s.users.FindByID(sub.UserID)
	if err != nil {
		log.Printf("Warning: failed to resolve author for notification %s on submission %s: %v", kind, sub.SubmissionID, err)
		return
	}
	s.notifySafe(kind, author.Email, s.submissionPayload(sub, author.FullName()))
}

// notifySafe swallows notifier failures; notification is never allowed to
// abort a workflow transition.
func (s *WorkflowService) notifySafe(kind, recipient string, payload map[string]string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(kind, recipient, payload); err != nil {
		log.Printf("Warning: failed to send %s notification to %s: %v", kind, recipient, err)
	}
}

func (s *WorkflowService) submissionPayload(sub *models.Submission, recipientName string) map[string]string {
	payload := map[string]string{
		"title":          sub.Title,
		"submission_id":  sub.SubmissionID,
		"recipient_name": recipientName,
	}
	if sub.Event != nil {
		payload["event_name"] = sub.Event.EventName
	} else if event, err := s.events.FindByID(sub.EventID); err == nil {
		payload["event_name"] = event.EventName
	}
	return payload
}
