package services

import (
	"errors"
	"testing"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
)

// expectAppError fails the test unless err is an AppError with the given
// HTTP status.
func expectAppError(t *testing.T, err error, status int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != status {
		t.Errorf("HTTPStatus = %d, expected %d (message: %s)", appErr.HTTPStatus, status, appErr.Message)
	}
}

func TestProjectCreate_SeedsOwnerMembership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner", 0)
	project := seedProject(t, db, owner, 10)

	var collab models.ProjectCollaborator
	if err := db.Where("project_id = ? AND user_id = ?", project.ID, owner.ID).First(&collab).Error; err != nil {
		t.Fatalf("owner collaborator record missing: %v", err)
	}
	if collab.Status != models.CollabApproved {
		t.Errorf("owner collaborator status = %q, expected %q", collab.Status, models.CollabApproved)
	}

	var collabed int64
	db.Model(&models.CollabedProject{}).
		Where("user_id = ? AND project_id = ?", owner.ID, project.ID).
		Count(&collabed)
	if collabed != 1 {
		t.Errorf("collabed project rows = %d, expected 1", collabed)
	}

	var chat models.Chat
	if err := db.Where("project_id = ?", project.ID).First(&chat).Error; err != nil {
		t.Fatalf("project chat missing: %v", err)
	}
	if chat.Name != project.Title {
		t.Errorf("chat name = %q, expected %q", chat.Name, project.Title)
	}
	var members int64
	db.Model(&models.ChatMember{}).Where("chat_id = ? AND user_id = ?", chat.ID, owner.ID).Count(&members)
	if members != 1 {
		t.Errorf("owner chat membership rows = %d, expected 1", members)
	}
}

func TestRequestToJoin(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	student := seedUser(t, db, "student", 0)
	project := seedProject(t, db, owner, 10)

	collab, err := svc.RequestToJoin(project.ID, student.ID)
	if err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}
	if collab.Status != models.CollabPending {
		t.Errorf("status = %q, expected %q", collab.Status, models.CollabPending)
	}
}

func TestRequestToJoin_OwnerConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	project := seedProject(t, db, owner, 10)

	_, err := svc.RequestToJoin(project.ID, owner.ID)
	expectAppError(t, err, 409)
}

func TestRequestToJoin_DuplicateConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	student := seedUser(t, db, "student", 0)
	project := seedProject(t, db, owner, 10)

	if _, err := svc.RequestToJoin(project.ID, student.ID); err != nil {
		t.Fatalf("first RequestToJoin failed: %v", err)
	}

	_, err := svc.RequestToJoin(project.ID, student.ID)
	expectAppError(t, err, 409)

	// A decided request blocks re-requesting just the same.
	if _, err := svc.Reject(project.ID, student.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	_, err = svc.RequestToJoin(project.ID, student.ID)
	expectAppError(t, err, 409)
}

func TestRequestToJoin_MissingProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	student := seedUser(t, db, "student", 0)

	_, err := svc.RequestToJoin(9999, student.ID)
	expectAppError(t, err, 404)
}

func TestApprove_GrantsMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	student := seedUser(t, db, "student", 0)
	project := seedProject(t, db, owner, 10)

	if _, err := svc.RequestToJoin(project.ID, student.ID); err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}

	collab, err := svc.Approve(project.ID, student.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if collab.Status != models.CollabApproved {
		t.Errorf("status = %q, expected %q", collab.Status, models.CollabApproved)
	}

	var collabed int64
	db.Model(&models.CollabedProject{}).
		Where("user_id = ? AND project_id = ?", student.ID, project.ID).
		Count(&collabed)
	if collabed != 1 {
		t.Errorf("collabed project rows = %d, expected 1", collabed)
	}

	var chat models.Chat
	if err := db.Where("project_id = ?", project.ID).First(&chat).Error; err != nil {
		t.Fatalf("project chat missing: %v", err)
	}
	var members int64
	db.Model(&models.ChatMember{}).Where("chat_id = ? AND user_id = ?", chat.ID, student.ID).Count(&members)
	if members != 1 {
		t.Errorf("chat membership rows = %d, expected 1", members)
	}

	// Second approval conflicts, and the membership state is unchanged.
	_, err = svc.Approve(project.ID, student.ID)
	expectAppError(t, err, 409)

	db.Model(&models.CollabedProject{}).
		Where("user_id = ? AND project_id = ?", student.ID, project.ID).
		Count(&collabed)
	if collabed != 1 {
		t.Errorf("collabed project rows after repeated approve = %d, expected 1", collabed)
	}
}

func TestApprove_MissingRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	student := seedUser(t, db, "student", 0)
	project := seedProject(t, db, owner, 10)

	_, err := svc.Approve(project.ID, student.ID)
	expectAppError(t, err, 404)
}

func TestReject_AfterApproval_RevokesMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	student := seedUser(t, db, "student", 0)
	project := seedProject(t, db, owner, 10)

	if _, err := svc.RequestToJoin(project.ID, student.ID); err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}
	if _, err := svc.Approve(project.ID, student.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	collab, err := svc.Reject(project.ID, student.ID)
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if collab.Status != models.CollabRejected {
		t.Errorf("status = %q, expected %q", collab.Status, models.CollabRejected)
	}

	var collabed int64
	db.Model(&models.CollabedProject{}).
		Where("user_id = ? AND project_id = ?", student.ID, project.ID).
		Count(&collabed)
	if collabed != 0 {
		t.Errorf("collabed project rows = %d, expected 0 after revocation", collabed)
	}

	var chat models.Chat
	if err := db.Where("project_id = ?", project.ID).First(&chat).Error; err != nil {
		t.Fatalf("project chat missing: %v", err)
	}
	var members int64
	db.Model(&models.ChatMember{}).Where("chat_id = ? AND user_id = ?", chat.ID, student.ID).Count(&members)
	if members != 0 {
		t.Errorf("chat membership rows = %d, expected 0 after revocation", members)
	}

	// The record stays, so a second reject conflicts.
	_, err = svc.Reject(project.ID, student.ID)
	expectAppError(t, err, 409)
}

func TestComplete_SettlesCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	project := seedProject(t, db, owner, 50)

	var students []*models.User
	for _, name := range []string{"alice", "bob", "carol"} {
		u := seedUser(t, db, name, 0)
		students = append(students, u)
		if _, err := svc.RequestToJoin(project.ID, u.ID); err != nil {
			t.Fatalf("RequestToJoin(%s) failed: %v", name, err)
		}
		if _, err := svc.Approve(project.ID, u.ID); err != nil {
			t.Fatalf("Approve(%s) failed: %v", name, err)
		}
	}

	// A pending request must not be settled.
	pending := seedUser(t, db, "dave", 0)
	if _, err := svc.RequestToJoin(project.ID, pending.ID); err != nil {
		t.Fatalf("RequestToJoin(dave) failed: %v", err)
	}

	summary, err := svc.Complete(project.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if summary.PerHeadCredits != 50 {
		t.Errorf("PerHeadCredits = %d, expected 50", summary.PerHeadCredits)
	}
	// Owner plus three approved students.
	if len(summary.CreditedUserIDs) != 4 {
		t.Errorf("credited users = %d, expected 4", len(summary.CreditedUserIDs))
	}

	for _, u := range students {
		var fresh models.User
		db.First(&fresh, u.ID)
		if fresh.CreditScore != 50 {
			t.Errorf("%s credit score = %d, expected 50", u.Username, fresh.CreditScore)
		}
	}

	var freshPending models.User
	db.First(&freshPending, pending.ID)
	if freshPending.CreditScore != 0 {
		t.Errorf("pending user credit score = %d, expected 0", freshPending.CreditScore)
	}

	var freshProject models.Project
	db.First(&freshProject, project.ID)
	if freshProject.Status != models.ProjectCompleted {
		t.Errorf("project status = %q, expected %q", freshProject.Status, models.ProjectCompleted)
	}

	// Completing twice conflicts and awards nothing further.
	_, err = svc.Complete(project.ID)
	expectAppError(t, err, 409)

	var again models.User
	db.First(&again, students[0].ID)
	if again.CreditScore != 50 {
		t.Errorf("credit score after repeated complete = %d, expected 50", again.CreditScore)
	}
}

func TestComplete_MissingProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)

	_, err := svc.Complete(12345)
	expectAppError(t, err, 404)
}

func TestListCollabs(t *testing.T) {
	db := newTestDB(t)
	svc := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	student := seedUser(t, db, "student", 0)
	project := seedProject(t, db, owner, 10)

	list, err := svc.ListCollabs(student.ID)
	if err != nil {
		t.Fatalf("ListCollabs failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("collab list length = %d, expected 0", len(list))
	}

	if _, err := svc.RequestToJoin(project.ID, student.ID); err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}
	if _, err := svc.Approve(project.ID, student.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	list, err = svc.ListCollabs(student.ID)
	if err != nil {
		t.Fatalf("ListCollabs failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("collab list length = %d, expected 1", len(list))
	}
	if list[0].ID != project.ID {
		t.Errorf("collab list entry = project %d, expected %d", list[0].ID, project.ID)
	}
	if list[0].Owner.ID != owner.ID {
		t.Errorf("collab list owner = %d, expected %d", list[0].Owner.ID, owner.ID)
	}
}
