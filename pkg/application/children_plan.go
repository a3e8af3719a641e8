package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

// ChildUpdatePlan pairs a parent objective with all of its children and
// the parent's description lookup, computed once and shared. Transient:
// built fresh per invocation, never persisted.
type ChildUpdatePlan struct {
	Parent              *objective.Objective
	Children            []objective.Objective
	ParentByDescription map[string]objective.KeyResult
}

// ChildOutcome is the per-child result of previewing or executing a
// children update.
type ChildOutcome struct {
	Child   objective.Objective
	Updated []SyncUpdate
	Skipped []SyncSkip
	Failed  []SyncFailure
}

// ChildrenReport aggregates per-child outcomes. Failures stay inside
// the child they belong to; one child's rejected update never stops the
// rest of the batch.
type ChildrenReport struct {
	Plan     *ChildUpdatePlan
	Children []ChildOutcome
}

// Totals sums updated/skipped/failed across all children.
func (r *ChildrenReport) Totals() (updated, skipped, failed int) {
	for _, c := range r.Children {
		updated += len(c.Updated)
		skipped += len(c.Skipped)
		failed += len(c.Failed)
	}
	return
}

// BuildChildrenPlan fetches the parent and every objective linked to it
// as a child. A parent with no children yields a nil plan and nil
// error: nothing to do is a valid outcome, not a failure.
func (s *SyncService) BuildChildrenPlan(ctx context.Context, parentID int) (*ChildUpdatePlan, error) {
	parent, err := s.gateway.Objective(ctx, parentID)
	if err != nil {
		return nil, err
	}

	children, err := s.gateway.ObjectivesByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, nil
	}

	return &ChildUpdatePlan{
		Parent:              parent,
		Children:            children,
		ParentByDescription: parentLookup(parent),
	}, nil
}

// matchChild computes the updates and skips for one child against the
// shared parent lookup. Used identically by preview and execute so the
// two always agree.
func matchChild(plan *ChildUpdatePlan, child objective.Objective) (updates []SyncUpdate, skips []SyncSkip) {
	for _, kr := range child.KeyResults {
		parentKR, ok := plan.ParentByDescription[kr.Description]
		if !ok {
			skips = append(skips, SyncSkip{
				KeyResultID: kr.ID,
				Description: kr.Description,
				Reason:      "no matching key result on parent",
			})
			continue
		}

		value, err := parentKR.CurrentValue.Int()
		if err != nil {
			skips = append(skips, SyncSkip{
				KeyResultID: kr.ID,
				Description: kr.Description,
				Reason:      err.Error(),
			})
			continue
		}

		updates = append(updates, SyncUpdate{
			KeyResultID: kr.ID,
			Description: kr.Description,
			Value:       value,
		})
	}
	return updates, skips
}

// PreviewPlan computes every child's updates and skips without touching
// the network. Safe to call repeatedly.
func (s *SyncService) PreviewPlan(plan *ChildUpdatePlan) *ChildrenReport {
	report := &ChildrenReport{Plan: plan}
	for _, child := range plan.Children {
		updates, skips := matchChild(plan, child)
		report.Children = append(report.Children, ChildOutcome{
			Child:   child,
			Updated: updates,
			Skipped: skips,
		})
	}
	return report
}

// ExecutePlan re-applies the same matching as PreviewPlan (no re-fetch)
// and issues one update call per matched key result. A failed call is
// recorded against its child and execution continues with the next key
// result.
func (s *SyncService) ExecutePlan(ctx context.Context, plan *ChildUpdatePlan) *ChildrenReport {
	report := &ChildrenReport{Plan: plan}

	for _, child := range plan.Children {
		outcome := ChildOutcome{Child: child}
		updates, skips := matchChild(plan, child)
		outcome.Skipped = skips

		for _, u := range updates {
			kr := objective.KeyResult{ID: u.KeyResultID, Description: u.Description}
			if err := s.pushValue(ctx, kr, u.Value); err != nil {
				outcome.Failed = append(outcome.Failed, SyncFailure{
					KeyResultID: u.KeyResultID,
					Description: u.Description,
					Err:         err,
				})
				continue
			}
			outcome.Updated = append(outcome.Updated, u)
		}

		report.Children = append(report.Children, outcome)
	}

	return report
}

// FormatChildrenPreview renders the pre-confirmation summary of a
// children update plan.
func FormatChildrenPreview(preview *ChildrenReport) string {
	var b strings.Builder
	rule := strings.Repeat("═", 80)
	parent := preview.Plan.Parent

	b.WriteString(rule + "\n")
	b.WriteString("CHILD PROGRESS UPDATE PREVIEW\n")
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "Parent: %q (ID: %d)\n", parent.Description, parent.ID)
	fmt.Fprintf(&b, "Children: %d\n\n", len(preview.Plan.Children))

	for _, c := range preview.Children {
		fmt.Fprintf(&b, "%s (ID: %d, owner %s)\n", c.Child.Description, c.Child.ID, c.Child.User.Name)
		for _, u := range c.Updated {
			fmt.Fprintf(&b, "  will update %q → %d\n", u.Description, u.Value)
		}
		for _, skip := range c.Skipped {
			fmt.Fprintf(&b, "  will skip   %q (%s)\n", skip.Description, skip.Reason)
		}
	}

	updated, skipped, _ := preview.Totals()
	fmt.Fprintf(&b, "\nTotal: %d updates, %d skipped\n", updated, skipped)
	b.WriteString(rule)

	return b.String()
}

// FormatChildrenReport renders the post-execution summary.
func FormatChildrenReport(report *ChildrenReport) string {
	var b strings.Builder

	for _, c := range report.Children {
		fmt.Fprintf(&b, "%s (ID: %d): %d updated, %d skipped, %d failed\n",
			c.Child.Description, c.Child.ID, len(c.Updated), len(c.Skipped), len(c.Failed))
		for _, f := range c.Failed {
			fmt.Fprintf(&b, "  FAILED %q: %v\n", f.Description, f.Err)
		}
	}

	updated, skipped, failed := report.Totals()
	fmt.Fprintf(&b, "Total: %d updated, %d skipped, %d failed", updated, skipped, failed)

	return b.String()
}
