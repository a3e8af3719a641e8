package objective

import (
	"errors"
	"fmt"
)

// Domain errors for remote objective operations.
var (
	// ErrNoParent indicates the objective has no recorded parent link.
	ErrNoParent = errors.New("objective has no parent")

	// ErrCreatedIDUnknown indicates an objective was created but its new
	// identifier could not be recovered from the response.
	ErrCreatedIDUnknown = errors.New("could not determine new objective id")
)

// RemoteError is a non-success HTTP status on a 15Five call. The status
// and body are kept verbatim so the operator sees exactly what the
// service rejected.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("%s: 15five returned %d: %s", e.Op, e.StatusCode, body)
}

// NoParentError reports a progress sync requested for an objective that
// is not linked to a parent.
type NoParentError struct {
	ChildID int
}

func (e *NoParentError) Error() string {
	return fmt.Sprintf("objective %d has no parent objective", e.ChildID)
}

// Is allows errors.Is to work with NoParentError.
func (e *NoParentError) Is(target error) bool {
	return target == ErrNoParent
}

// CreatedUnknownIDError reports that the create submission succeeded but
// the redirect URL did not carry the new objective's identifier. The
// objective exists server-side; this condition needs manual
// reconciliation, not a retry, since retrying would create a duplicate.
type CreatedUnknownIDError struct {
	Location string
}

func (e *CreatedUnknownIDError) Error() string {
	return fmt.Sprintf("objective was created but the response URL %q does not contain its id", e.Location)
}

// Is allows errors.Is to work with CreatedUnknownIDError.
func (e *CreatedUnknownIDError) Is(target error) bool {
	return target == ErrCreatedIDUnknown
}
