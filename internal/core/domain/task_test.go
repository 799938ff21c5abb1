package domain

import "testing"

func TestParseTaskStatus(t *testing.T) {
	valid := []string{"not started", "in progress", "completed"}
	for _, s := range valid {
		status, err := ParseTaskStatus(s)
		if err != nil {
			t.Fatalf("ParseTaskStatus(%q) returned error: %v", s, err)
		}
		if string(status) != s {
			t.Fatalf("ParseTaskStatus(%q) = %q", s, status)
		}
	}

	invalid := []string{"", "done", "Not Started", "COMPLETED", "in-progress", "pending"}
	for _, s := range invalid {
		if _, err := ParseTaskStatus(s); err != ErrInvalidStatus {
			t.Fatalf("ParseTaskStatus(%q): expected ErrInvalidStatus, got %v", s, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"individual", "employee", "admin"} {
		role, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", s, err)
		}
		if string(role) != s {
			t.Fatalf("ParseRole(%q) = %q", s, role)
		}
	}

	for _, s := range []string{"", "Admin", "superuser", "client"} {
		if _, err := ParseRole(s); err != ErrInvalidRole {
			t.Fatalf("ParseRole(%q): expected ErrInvalidRole, got %v", s, err)
		}
	}
}

func TestTaskHasAssignee(t *testing.T) {
	task := Task{AssigneeIDs: []string{"u1", "u2"}}
	if !task.HasAssignee("u1") {
		t.Fatalf("expected u1 to be an assignee")
	}
	if task.HasAssignee("u3") {
		t.Fatalf("u3 should not be an assignee")
	}

	empty := Task{}
	if empty.HasAssignee("u1") {
		t.Fatalf("empty assignee set should contain nobody")
	}
}
