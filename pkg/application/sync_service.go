package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/darylhandley/15five-utils/pkg/domain"
	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

// SyncService pushes a parent objective's key-result progress into the
// matching key results of its children. Key results are matched purely
// by exact description equality; there is no identifier correlation
// across objectives.
type SyncService struct {
	gateway domain.Gateway
	audit   domain.AuditLogger
}

func NewSyncService(gateway domain.Gateway, audit domain.AuditLogger) *SyncService {
	return &SyncService{gateway: gateway, audit: audit}
}

// SyncUpdate is one key result whose value was (or will be) pushed.
type SyncUpdate struct {
	KeyResultID int
	Description string
	Value       int
}

// SyncSkip is a key result left untouched. Unmatched descriptions are
// an expected condition: children may track metrics of their own.
type SyncSkip struct {
	KeyResultID int
	Description string
	Reason      string
}

// SyncFailure is an update call rejected by the service, attributed to
// its key result.
type SyncFailure struct {
	KeyResultID int
	Description string
	Err         error
}

// SyncReport enumerates what happened to each child key result. It is
// built even under partial failure; updates already applied are not
// rolled back.
type SyncReport struct {
	Parent  *objective.Objective
	Child   *objective.Objective
	Updated []SyncUpdate
	Skipped []SyncSkip
	Failed  []SyncFailure
}

// parentLookup indexes a parent's key results by description. Repeated
// descriptions resolve last-write-wins, keeping matching deterministic
// in document order.
func parentLookup(parent *objective.Objective) map[string]objective.KeyResult {
	lookup := make(map[string]objective.KeyResult, len(parent.KeyResults))
	for _, kr := range parent.KeyResults {
		lookup[kr.Description] = kr
	}
	return lookup
}

// SyncFromParent copies the parent's current key-result values into the
// child objective identified by childID. A child without a parent link
// is a NoParentError before any network write happens.
func (s *SyncService) SyncFromParent(ctx context.Context, childID int) (*SyncReport, error) {
	child, err := s.gateway.Objective(ctx, childID)
	if err != nil {
		return nil, err
	}
	if !child.HasParent() {
		return nil, &objective.NoParentError{ChildID: childID}
	}

	parent, err := s.gateway.Objective(ctx, *child.Parent)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{Parent: parent, Child: child}
	lookup := parentLookup(parent)

	for _, kr := range child.KeyResults {
		parentKR, ok := lookup[kr.Description]
		if !ok {
			report.Skipped = append(report.Skipped, SyncSkip{
				KeyResultID: kr.ID,
				Description: kr.Description,
				Reason:      "no matching key result on parent",
			})
			continue
		}

		value, err := parentKR.CurrentValue.Int()
		if err != nil {
			report.Skipped = append(report.Skipped, SyncSkip{
				KeyResultID: kr.ID,
				Description: kr.Description,
				Reason:      err.Error(),
			})
			continue
		}

		if err := s.pushValue(ctx, kr, value); err != nil {
			report.Failed = append(report.Failed, SyncFailure{
				KeyResultID: kr.ID,
				Description: kr.Description,
				Err:         err,
			})
			continue
		}

		report.Updated = append(report.Updated, SyncUpdate{
			KeyResultID: kr.ID,
			Description: kr.Description,
			Value:       value,
		})
	}

	return report, nil
}

func (s *SyncService) pushValue(ctx context.Context, kr objective.KeyResult, value int) error {
	if err := s.gateway.UpdateKeyResult(ctx, kr.ID, value); err != nil {
		return err
	}
	_ = s.audit.Log("keyresult.update", "operator", map[string]interface{}{
		"key_result_id": kr.ID,
		"value":         value,
	})
	return nil
}

// FormatSyncReport renders a one-child sync report.
func FormatSyncReport(report *SyncReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Synced progress from %q (%d) into %q (%d)\n",
		report.Parent.Description, report.Parent.ID,
		report.Child.Description, report.Child.ID)

	for _, u := range report.Updated {
		fmt.Fprintf(&b, "  updated %q → %d\n", u.Description, u.Value)
	}
	for _, skip := range report.Skipped {
		fmt.Fprintf(&b, "  skipped %q (%s)\n", skip.Description, skip.Reason)
	}
	for _, f := range report.Failed {
		fmt.Fprintf(&b, "  FAILED  %q: %v\n", f.Description, f.Err)
	}

	fmt.Fprintf(&b, "%d updated, %d skipped, %d failed",
		len(report.Updated), len(report.Skipped), len(report.Failed))

	return b.String()
}
