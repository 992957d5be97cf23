package transport

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/taskdeck/backend/domain"
)

func TestRegisterRequestValidation(t *testing.T) {
	cases := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Email: "a@x.com", Password: "secret1"}, false},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "secret1"}, true},
		{"email with display name", RegisterRequest{Email: "A <a@x.com>", Password: "secret1"}, true},
		{"short password", RegisterRequest{Email: "a@x.com", Password: "five5"}, true},
		{"empty", RegisterRequest{}, true},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestCreateTaskModelDefaultsStatus(t *testing.T) {
	task, err := CreateTaskRequest{Title: "T1"}.Model("owner-1")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if task.Status != domain.StatusTodo {
		t.Fatalf("expected default status TODO, got %q", task.Status)
	}
	if task.UserID != "owner-1" {
		t.Fatalf("expected owner to be assigned, got %q", task.UserID)
	}
	if task.DueDate != nil {
		t.Fatalf("expected no due date")
	}
}

func TestCreateTaskModelValidation(t *testing.T) {
	long := make([]rune, 101)
	for i := range long {
		long[i] = 'x'
	}

	cases := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"missing title", CreateTaskRequest{}},
		{"title over 100 runes", CreateTaskRequest{Title: string(long)}},
		{"bad status", CreateTaskRequest{Title: "T", Status: "DOING"}},
		{"bad due date", CreateTaskRequest{Title: "T", DueDate: "tomorrow"}},
	}
	for _, tc := range cases {
		if _, err := tc.req.Model("owner-1"); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateTaskModelParsesDueDate(t *testing.T) {
	task, err := CreateTaskRequest{Title: "T", DueDate: "2026-09-01T12:00:00Z"}.Model("owner-1")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	want := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	if task.DueDate == nil || !task.DueDate.Equal(want) {
		t.Fatalf("expected due date %v, got %v", want, task.DueDate)
	}
}

func TestUpdatePatchDistinguishesAbsentAndNull(t *testing.T) {
	var absent UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"title":"new"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch, err := absent.Patch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patch.DueDateSet {
		t.Fatalf("absent dueDate must not mark the field as set")
	}
	if patch.Title == nil || *patch.Title != "new" {
		t.Fatalf("expected title in patch")
	}
	if patch.Content != nil || patch.Status != nil {
		t.Fatalf("unsupplied fields must stay nil")
	}

	var cleared UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"dueDate":null}`), &cleared); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch, err = cleared.Patch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !patch.DueDateSet || patch.DueDate != nil {
		t.Fatalf("explicit null must clear the due date")
	}

	var set UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"dueDate":"2026-09-01T12:00:00Z"}`), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch, err = set.Patch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !patch.DueDateSet || patch.DueDate == nil {
		t.Fatalf("expected due date to be set")
	}
}

func TestParseListParams(t *testing.T) {
	params, err := ParseListParams("", "", "")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if params.Page != 1 || params.Limit != 10 {
		t.Fatalf("expected page 1 limit 10, got %d/%d", params.Page, params.Limit)
	}

	params, err = ParseListParams("DONE", "3", "25")
	if err != nil {
		t.Fatalf("explicit: %v", err)
	}
	if params.Status != domain.StatusDone || params.Page != 3 || params.Limit != 25 {
		t.Fatalf("unexpected params %+v", params)
	}
	if params.Offset() != 50 {
		t.Fatalf("expected offset 50, got %d", params.Offset())
	}

	for _, bad := range [][3]string{
		{"WAITING", "", ""},
		{"", "0", ""},
		{"", "x", ""},
		{"", "", "0"},
		{"", "", "101"},
	} {
		if _, err := ParseListParams(bad[0], bad[1], bad[2]); err == nil {
			t.Fatalf("expected error for %v", bad)
		}
	}
}

func TestPaginationTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
	}
	for _, tc := range cases {
		if got := NewPagination(1, tc.limit, tc.total).TotalPages; got != tc.want {
			t.Fatalf("total %d limit %d: expected %d pages, got %d", tc.total, tc.limit, tc.want, got)
		}
	}
}
