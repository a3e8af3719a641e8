package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestVerificationError_ReportsWithoutExiting(t *testing.T) {
	err := verificationError([]string{
		"Event 1 (abc): PrevHash mismatch. Audit trail broken.",
		"Event 2 (def): Content hash mismatch. Possible tampering.",
	})

	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %T", err)
	}
	if cliErr.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", cliErr.ExitCode)
	}
	if !strings.Contains(cliErr.Message, "2 violations") {
		t.Errorf("message should carry the violation count: %q", cliErr.Message)
	}
}
