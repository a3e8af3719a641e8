package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

// UserResolver maps an alias or numeric identifier to a user ID. The
// second return is false when the identifier cannot be resolved.
type UserResolver func(identifier string) (int, bool, error)

// NameLookup returns a display name for a user ID.
type NameLookup func(ctx context.Context, id int) string

// TeamCloneTarget is a team member eligible for cloning.
type TeamCloneTarget struct {
	Alias    string
	UserID   int
	UserName string
}

// TeamCloneSkip is a team member excluded before execution.
type TeamCloneSkip struct {
	Alias    string
	UserName string
	Reason   string
}

// TeamClonePlan is the resolved batch: who gets a clone, who is skipped
// and why, and which aliases could not be resolved at all. Built once
// per invocation and previewed before a single confirmation covers the
// whole batch.
type TeamClonePlan struct {
	Source       *objective.Objective
	Team         string
	Targets      []TeamCloneTarget
	Skipped      []TeamCloneSkip
	Unresolved   []string
	TotalMembers int
}

// TeamCloneStep reports progress of one clone inside the batch.
type TeamCloneStep struct {
	Index  int
	Total  int
	Target TeamCloneTarget
	NewID  int
	Err    error
}

// TeamCloneReport is the batch outcome. On failure the batch stops at
// the failing member; already-created clones stay created.
type TeamCloneReport struct {
	Plan      *TeamClonePlan
	Succeeded []TeamCloneStep
	Failed    *TeamCloneStep
}

// Attempted is the number of eligible targets when the batch started.
func (r *TeamCloneReport) Attempted() int {
	return len(r.Plan.Targets)
}

// AttemptsMade counts clone calls actually issued: every success plus
// the failing one, when the batch stopped early.
func (r *TeamCloneReport) AttemptsMade() int {
	n := len(r.Succeeded)
	if r.Failed != nil {
		n++
	}
	return n
}

// FormatTeamCloneReport renders the batch summary line: successes over
// eligible targets, then clone attempts over total team members.
func FormatTeamCloneReport(report *TeamCloneReport) string {
	return fmt.Sprintf("%d/%d successful clones attempted, %d/%d team members total",
		len(report.Succeeded), report.Attempted(),
		report.AttemptsMade(), report.Plan.TotalMembers)
}

// PlanTeamClone resolves each team member and runs the duplicate guard
// against every resolved user. Unresolved aliases and duplicate holders
// are recorded in the plan, never treated as fatal.
func (s *CloneService) PlanTeamClone(ctx context.Context, source *objective.Objective, teamName string, members []string, resolve UserResolver, nameOf NameLookup) (*TeamClonePlan, error) {
	plan := &TeamClonePlan{
		Source:       source,
		Team:         teamName,
		TotalMembers: len(members),
	}

	for _, member := range members {
		userID, ok, err := resolve(member)
		if err != nil {
			return nil, err
		}
		if !ok {
			plan.Unresolved = append(plan.Unresolved, member)
			continue
		}

		userName := nameOf(ctx, userID)

		duplicates, err := s.FindDuplicates(ctx, source, userID)
		if err != nil {
			plan.Skipped = append(plan.Skipped, TeamCloneSkip{
				Alias:    member,
				UserName: userName,
				Reason:   fmt.Sprintf("error checking duplicates: %v", err),
			})
			continue
		}
		if len(duplicates) > 0 {
			plan.Skipped = append(plan.Skipped, TeamCloneSkip{
				Alias:    member,
				UserName: userName,
				Reason:   "duplicate found",
			})
			continue
		}

		plan.Targets = append(plan.Targets, TeamCloneTarget{
			Alias:    member,
			UserID:   userID,
			UserName: userName,
		})
	}

	return plan, nil
}

// BuildTeamPreview renders the batch summary shown before the single
// confirmation. Pure; no network calls.
func (s *CloneService) BuildTeamPreview(plan *TeamClonePlan) string {
	var b strings.Builder
	rule := strings.Repeat("═", 80)
	source := plan.Source

	b.WriteString(rule + "\n")
	b.WriteString("TEAM CLONE PREVIEW\n")
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "Objective:   %q (ID: %d)\n", source.Description, source.ID)
	fmt.Fprintf(&b, "From:        %s\n", source.User.Name)
	fmt.Fprintf(&b, "Period:      %s → %s\n", source.StartDate(), source.EndDate())
	if len(source.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:        %s\n", source.TagNames())
	}
	fmt.Fprintf(&b, "Key Results: %d\n", len(source.KeyResults))

	fmt.Fprintf(&b, "\nTeam: %s (%d members)\n", plan.Team, plan.TotalMembers)

	if len(plan.Targets) > 0 {
		fmt.Fprintf(&b, "Will clone to (%d):\n", len(plan.Targets))
		for _, t := range plan.Targets {
			fmt.Fprintf(&b, "   • %s (%s)\n", t.UserName, t.Alias)
		}
	}

	if len(plan.Skipped) > 0 {
		fmt.Fprintf(&b, "Skipping (%d):\n", len(plan.Skipped))
		for _, skip := range plan.Skipped {
			fmt.Fprintf(&b, "   • %s (%s) - %s\n", skip.UserName, skip.Alias, skip.Reason)
		}
	}

	if len(plan.Unresolved) > 0 {
		fmt.Fprintf(&b, "Unresolved aliases (%d): %s\n", len(plan.Unresolved), strings.Join(plan.Unresolved, ", "))
	}

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "Clone to %d users? (y/N): ", len(plan.Targets))

	return b.String()
}

// ExecuteTeamClone clones sequentially to each eligible target, in list
// order, stopping at the first failure. The progress callback, when
// non-nil, is invoked after each attempt. Clones already made before a
// failure persist; there is no rollback.
func (s *CloneService) ExecuteTeamClone(ctx context.Context, plan *TeamClonePlan, progress func(TeamCloneStep)) *TeamCloneReport {
	report := &TeamCloneReport{Plan: plan}

	for i, target := range plan.Targets {
		step := TeamCloneStep{Index: i + 1, Total: len(plan.Targets), Target: target}

		newID, err := s.Clone(ctx, plan.Source, target.UserID)
		if err != nil {
			step.Err = err
			report.Failed = &step
			if progress != nil {
				progress(step)
			}
			// Fail fast: remaining targets are never attempted.
			break
		}

		step.NewID = newID
		report.Succeeded = append(report.Succeeded, step)
		if progress != nil {
			progress(step)
		}
	}

	return report
}
