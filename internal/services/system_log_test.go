package services

import (
	"testing"
	"time"

	"github.com/collabconnect/backend/internal/models"
)

func TestSystemLogWriteAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemLogService(db)

	uid := uint(7)
	svc.Info("Users", "Update", "admin updated user 3", &uid, "127.0.0.1", "test-agent", map[string]interface{}{"target": 3})
	svc.Warning("Users", "Delete", "admin deleted user 4", &uid, "127.0.0.1", "test-agent", nil)
	svc.Error("Auth", "Login", "login failure burst", nil, "10.0.0.9", "test-agent", nil)

	resp, err := svc.List(&SystemLogListRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, expected 3", resp.Total)
	}

	resp, err = svc.List(&SystemLogListRequest{Module: "Users"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total for module Users = %d, expected 2", resp.Total)
	}

	resp, err = svc.List(&SystemLogListRequest{Level: "error"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Total for level error = %d, expected 1", resp.Total)
	}

	resp, err = svc.List(&SystemLogListRequest{Search: "deleted"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Total for search 'deleted' = %d, expected 1", resp.Total)
	}
}

func TestSystemLogCleanup(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemLogService(db)

	old := models.SystemLog{
		Level:     "info",
		Module:    "Users",
		Action:    "Update",
		Message:   "stale entry",
		CreatedAt: time.Now().AddDate(0, 0, -100),
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("failed to insert old entry: %v", err)
	}
	svc.Info("Users", "Update", "fresh entry", nil, "", "", nil)

	deleted, err := svc.CleanupOldLogs(30)
	if err != nil {
		t.Fatalf("CleanupOldLogs failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, expected 1", deleted)
	}

	var remaining int64
	db.Model(&models.SystemLog{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("remaining entries = %d, expected 1", remaining)
	}
}
