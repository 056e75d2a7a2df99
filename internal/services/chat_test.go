package services

import (
	"testing"
)

func TestChatPostMessage_MemberOnly(t *testing.T) {
	db := newTestDB(t)
	chats := NewChatService(db)
	collabs := NewCollabService(db)
	owner := seedUser(t, db, "owner", 0)
	student := seedUser(t, db, "student", 0)
	project := seedProject(t, db, owner, 0)

	// Not yet a collaborator.
	_, err := chats.PostMessage(project.ID, student.ID, &PostMessageRequest{Body: "hi all"})
	expectAppError(t, err, 403)

	if _, err := collabs.RequestToJoin(project.ID, student.ID); err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}
	if _, err := collabs.Approve(project.ID, student.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	msg, err := chats.PostMessage(project.ID, student.ID, &PostMessageRequest{Body: "hi all"})
	if err != nil {
		t.Fatalf("PostMessage after approval failed: %v", err)
	}
	if msg.User.Username != "student" {
		t.Errorf("message user = %q, expected %q", msg.User.Username, "student")
	}

	// Revocation removes chat access again.
	if _, err := collabs.Reject(project.ID, student.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	_, err = chats.PostMessage(project.ID, student.ID, &PostMessageRequest{Body: "still here?"})
	expectAppError(t, err, 403)
}

func TestChatPostMessage_EmptyBody(t *testing.T) {
	db := newTestDB(t)
	chats := NewChatService(db)
	owner := seedUser(t, db, "owner", 0)
	project := seedProject(t, db, owner, 0)

	_, err := chats.PostMessage(project.ID, owner.ID, &PostMessageRequest{Body: "   "})
	expectAppError(t, err, 400)
}

func TestChatMessages_Order(t *testing.T) {
	db := newTestDB(t)
	chats := NewChatService(db)
	owner := seedUser(t, db, "owner", 0)
	project := seedProject(t, db, owner, 0)

	for _, body := range []string{"first", "second", "third"} {
		if _, err := chats.PostMessage(project.ID, owner.ID, &PostMessageRequest{Body: body}); err != nil {
			t.Fatalf("PostMessage(%s) failed: %v", body, err)
		}
	}

	messages, err := chats.Messages(project.ID)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("messages = %d, expected 3", len(messages))
	}
	if messages[0].Body != "first" || messages[2].Body != "third" {
		t.Errorf("messages out of order: %q ... %q", messages[0].Body, messages[2].Body)
	}
}

func TestChatMessages_NoChat(t *testing.T) {
	db := newTestDB(t)
	chats := NewChatService(db)

	messages, err := chats.Messages(42)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("messages for missing chat = %d, expected 0", len(messages))
	}
}
