package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "simple error",
			err:  stderrors.New("something broke"),
			want: "Error: something broke",
		},
		{
			name: "wrapped error",
			err:  fmt.Errorf("outer: %w", stderrors.New("inner")),
			want: "Error: outer: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("habit %q not found", "read")
	want := `Error: habit "read" not found`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validationf("name is empty"), ErrValidation},
		{"not found", NotFoundf("habit %s", "abc"), ErrNotFound},
		{"permission denied", PermissionDeniedf("notifications blocked"), ErrPermissionDenied},
		{"persistence", Persistencef("write failed: %v", "disk full"), ErrPersistence},
		{"scheduler", Schedulerf("agent unreachable"), ErrScheduler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.kind) {
				t.Errorf("Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
			// Kinds must stay distinct from each other
			for _, other := range tests {
				if other.kind != tt.kind && Is(tt.err, other.kind) {
					t.Errorf("%v unexpectedly matches kind %v", tt.err, other.kind)
				}
			}
		})
	}
}

func TestKindMessageIncluded(t *testing.T) {
	err := Validationf("reminder time must be HH:MM: got %q", "25:99")
	if !strings.Contains(err.Error(), "25:99") {
		t.Errorf("wrapped message lost detail: %v", err)
	}
	if !strings.Contains(err.Error(), "validation error") {
		t.Errorf("wrapped message lost kind: %v", err)
	}
}
