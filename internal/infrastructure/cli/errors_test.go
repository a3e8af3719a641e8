package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

func TestCLIError(t *testing.T) {
	t.Run("Error with cause", func(t *testing.T) {
		cause := errors.New("root cause")
		e := NewCLIError("something failed", "try this", cause)
		if e.Error() != "something failed: root cause" {
			t.Fatalf("unexpected: %s", e.Error())
		}
		if e.ExitCode != 1 {
			t.Fatalf("expected exit code 1, got %d", e.ExitCode)
		}
	})

	t.Run("Error without cause", func(t *testing.T) {
		e := NewCLIError("something failed", "try this", nil)
		if e.Error() != "something failed" {
			t.Fatalf("unexpected: %s", e.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root")
		e := NewCLIError("msg", "", cause)
		if !errors.Is(e, cause) {
			t.Fatal("errors.Is should match wrapped cause")
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
		wantCLI  bool
	}{
		{
			name: "nil returns nil",
			err:  nil,
		},
		{
			name:     "NoParentError",
			err:      &objective.NoParentError{ChildID: 42},
			wantHint: "Objective 42 is not linked to a parent — nothing was written",
			wantCLI:  true,
		},
		{
			name:     "wrapped NoParentError",
			err:      fmt.Errorf("sync: %w", &objective.NoParentError{ChildID: 42}),
			wantHint: "Objective 42 is not linked to a parent — nothing was written",
			wantCLI:  true,
		},
		{
			name:     "CreatedUnknownIDError warns against retrying",
			err:      &objective.CreatedUnknownIDError{Location: "/home/"},
			wantHint: "Check 15Five manually before retrying — retrying would create a duplicate",
			wantCLI:  true,
		},
		{
			name:     "RemoteError 401 points at stale session",
			err:      &objective.RemoteError{Op: "list users", StatusCode: 401, Body: "unauthorized"},
			wantHint: "Your session may have expired — run '15five setup' with fresh browser credentials",
			wantCLI:  true,
		},
		{
			name:     "RemoteError 403 points at stale session",
			err:      &objective.RemoteError{Op: "create objective", StatusCode: 403, Body: "forbidden"},
			wantHint: "Your session may have expired — run '15five setup' with fresh browser credentials",
			wantCLI:  true,
		},
		{
			name:     "RemoteError 500 gets the generic hint",
			err:      &objective.RemoteError{Op: "create objective", StatusCode: 500, Body: "boom"},
			wantHint: "Check the request and try again",
			wantCLI:  true,
		},
		{
			name: "unmapped error passes through",
			err:  errors.New("something else"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)
			if tt.err == nil {
				if result != nil {
					t.Fatal("expected nil")
				}
				return
			}
			if !tt.wantCLI {
				if result != tt.err {
					t.Fatal("unmapped error should pass through unchanged")
				}
				return
			}
			var cliErr *CLIError
			if !errors.As(result, &cliErr) {
				t.Fatalf("expected CLIError, got %T", result)
			}
			if cliErr.Hint != tt.wantHint {
				t.Fatalf("hint = %q, want %q", cliErr.Hint, tt.wantHint)
			}
			if !errors.Is(cliErr, tt.err) {
				t.Fatal("CLIError should wrap original error")
			}
		})
	}
}
