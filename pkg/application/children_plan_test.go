package application

import (
	"context"
	"strings"
	"testing"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

func childGateway() *fakeGateway {
	return &fakeGateway{
		objectiveFn: func(id int) (*objective.Objective, error) {
			return parentWithKRs(id,
				objective.KeyResult{ID: 11, Description: "Shared metric", CurrentValue: "42.70"},
			), nil
		},
		byParentFn: func(parentID int) ([]objective.Objective, error) {
			return []objective.Objective{
				{ID: 201, Description: "child one", User: objective.ObjectiveUser{Name: "Amy"}, KeyResults: []objective.KeyResult{
					{ID: 21, Description: "Shared metric"},
				}},
				{ID: 202, Description: "child two", User: objective.ObjectiveUser{Name: "Mia"}, KeyResults: []objective.KeyResult{
					{ID: 31, Description: "Shared metric"},
					{ID: 32, Description: "Own metric"},
				}},
			}, nil
		},
	}
}

func TestBuildChildrenPlan_NoChildren(t *testing.T) {
	gw := &fakeGateway{byParentFn: func(parentID int) ([]objective.Objective, error) {
		return nil, nil
	}}
	svc := NewSyncService(gw, noopAudit{})

	plan, err := svc.BuildChildrenPlan(context.Background(), 100)
	if err != nil {
		t.Fatalf("BuildChildrenPlan: %v", err)
	}
	if plan != nil {
		t.Error("zero children must yield a nil plan, not an error")
	}
}

func TestPreviewPlan(t *testing.T) {
	gw := childGateway()
	svc := NewSyncService(gw, noopAudit{})

	plan, err := svc.BuildChildrenPlan(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if plan == nil {
		t.Fatal("expected a plan")
	}

	preview := svc.PreviewPlan(plan)
	updated, skipped, failed := preview.Totals()
	if updated != 2 || skipped != 1 || failed != 0 {
		t.Errorf("totals = %d/%d/%d, want 2/1/0", updated, skipped, failed)
	}

	// Preview never touches the network for updates.
	if len(gw.updatedValues) != 0 {
		t.Error("preview must not write")
	}

	text := FormatChildrenPreview(preview)
	for _, fragment := range []string{"child one", "child two", "Shared metric", "2 updates, 1 skipped"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("preview text missing %q", fragment)
		}
	}
}

func TestExecutePlan_PerChildAccounting(t *testing.T) {
	gw := childGateway()
	gw.updateFn = func(keyResultID, value int) error {
		if keyResultID == 21 {
			return &objective.RemoteError{Op: "update key result 21", StatusCode: 500, Body: "boom"}
		}
		return nil
	}
	svc := NewSyncService(gw, noopAudit{})

	plan, err := svc.BuildChildrenPlan(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}

	report := svc.ExecutePlan(context.Background(), plan)
	if len(report.Children) != 2 {
		t.Fatalf("children = %d", len(report.Children))
	}

	// First child's only update failed; second child is unaffected.
	first, second := report.Children[0], report.Children[1]
	if len(first.Failed) != 1 || len(first.Updated) != 0 {
		t.Errorf("first child: %+v", first)
	}
	if len(second.Updated) != 1 || second.Updated[0].KeyResultID != 31 {
		t.Errorf("second child: %+v", second)
	}
	if len(second.Skipped) != 1 {
		t.Errorf("second child's own metric should be skipped: %+v", second.Skipped)
	}

	// The pushed value is the parent's current value truncated.
	if gw.updatedValues[31] != 42 {
		t.Errorf("gateway saw %v", gw.updatedValues)
	}

	updated, skipped, failed := report.Totals()
	if updated != 1 || skipped != 1 || failed != 1 {
		t.Errorf("totals = %d/%d/%d, want 1/1/1", updated, skipped, failed)
	}
}
