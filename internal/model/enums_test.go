package model

import (
	"errors"
	"testing"
)

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{" In_Progress ", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"cancelled", StatusCancelled, false},
		{"done", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTaskStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTaskStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTaskStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	parsers := map[string]func(string) error{
		"role":      func(s string) error { _, err := ParseRole(s); return err },
		"priority":  func(s string) error { _, err := ParsePriority(s); return err },
		"task_type": func(s string) error { _, err := ParseTaskType(s); return err },
		"area_type": func(s string) error { _, err := ParseAreaType(s); return err },
		"frequency": func(s string) error { _, err := ParseFrequency(s); return err },
	}
	for field, parse := range parsers {
		err := parse("nonsense")
		var iv *InvalidValueError
		if !errors.As(err, &iv) {
			t.Errorf("%s: got %v, want InvalidValueError", field, err)
			continue
		}
		if iv.Value != "nonsense" {
			t.Errorf("%s: Value = %q", field, iv.Value)
		}
	}
}

func TestParseRoleAcceptsBothRoles(t *testing.T) {
	for _, s := range []string{"admin", "staff", "ADMIN"} {
		if _, err := ParseRole(s); err != nil {
			t.Errorf("ParseRole(%q): %v", s, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	if got, err := ParseDate("due_date", "2026-10-16"); err != nil || got != "2026-10-16" {
		t.Errorf("ParseDate valid = %q, %v", got, err)
	}
	for _, bad := range []string{"2026-13-01", "16/10/2026", "2026-10-16T00:00:00Z", ""} {
		if _, err := ParseDate("due_date", bad); err == nil {
			t.Errorf("ParseDate(%q) accepted", bad)
		}
	}
}

func TestDueReminderLocation(t *testing.T) {
	unit, area, empty := "304", "Lobby", ""
	tests := []struct {
		name string
		r    DueReminder
		want string
	}{
		{"unit wins", DueReminder{UnitNumber: &unit, AreaName: &area}, "304"},
		{"area", DueReminder{AreaName: &area}, "Lobby"},
		{"empty unit falls through", DueReminder{UnitNumber: &empty}, "N/A"},
		{"none", DueReminder{}, "N/A"},
	}
	for _, tt := range tests {
		if got := tt.r.Location(); got != tt.want {
			t.Errorf("%s: Location() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
