package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/darylhandley/15five-utils/internal/infrastructure/wiring"
	"github.com/darylhandley/15five-utils/pkg/application"
	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

var objectivesCmd = &cobra.Command{
	Use:     "objectives",
	Aliases: []string{"obj"},
	Short:   "List, clone, and sync 15Five objectives",
}

var objectivesFull bool

var objectivesListCmd = &cobra.Command{
	Use:   "list [limit]",
	Short: "List current objectives",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		limit := 10
		if len(args) > 0 {
			limit, err = strconv.Atoi(args[0])
			if err != nil || limit <= 0 {
				return NewCLIError(fmt.Sprintf("invalid limit %q", args[0]), "Pass a positive number, e.g. '15five objectives list 25'", err)
			}
		}

		objectives, err := services.Gateway.Objectives(cmd.Context(), limit)
		if err != nil {
			return MapError(fmt.Errorf("list objectives: %w", err))
		}
		printObjectives(services, objectives)
		return nil
	},
}

var objectivesListByUserCmd = &cobra.Command{
	Use:   "listbyuser <user>",
	Short: "List a user's current objectives",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		userID, err := resolveUser(services, args[0])
		if err != nil {
			return err
		}

		objectives, err := services.Gateway.ObjectivesByUser(cmd.Context(), userID)
		if err != nil {
			return MapError(fmt.Errorf("list objectives for user %d: %w", userID, err))
		}
		printObjectives(services, objectives)
		return nil
	},
}

var objectivesListByTeamCmd = &cobra.Command{
	Use:   "listbyteam <team>",
	Short: "List current objectives for every member of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		members, ok, err := services.Teams.Members(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return NewCLIError(fmt.Sprintf("team %q does not exist", args[0]), "Run '15five teams list' to see known teams", nil)
		}

		for _, member := range members {
			userID, resolved, err := services.Aliases.Resolve(member)
			if err != nil {
				return err
			}
			if !resolved {
				warn.Printf("Skipping %q: alias not found\n", member)
				continue
			}

			heading.Printf("── %s ──\n", services.Users.DisplayName(cmd.Context(), userID))
			objectives, err := services.Gateway.ObjectivesByUser(cmd.Context(), userID)
			if err != nil {
				return MapError(fmt.Errorf("list objectives for %q: %w", member, err))
			}
			printObjectives(services, objectives)
		}
		return nil
	},
}

var objectivesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one objective in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		id, err := parseObjectiveID(args[0])
		if err != nil {
			return err
		}

		obj, err := services.Gateway.Objective(cmd.Context(), id)
		if err != nil {
			return MapError(fmt.Errorf("get objective %d: %w", id, err))
		}
		fmt.Println(renderObjectiveDetail(services.Config.BaseURL, obj))
		return nil
	},
}

var objectivesCloneCmd = &cobra.Command{
	Use:   "clone <id> <user>",
	Short: "Clone an objective to another user",
	Long: `Clone an objective to another user. The clone copies the title, dates,
tags, and key results, is linked to the source as its child, and is
owned by the target user. A preview is shown before anything is sent.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		sourceID, err := parseObjectiveID(args[0])
		if err != nil {
			return err
		}
		targetID, err := resolveUser(services, args[1])
		if err != nil {
			return err
		}

		source, err := services.Gateway.Objective(ctx, sourceID)
		if err != nil {
			return MapError(fmt.Errorf("get objective %d: %w", sourceID, err))
		}
		targetName := services.Users.DisplayName(ctx, targetID)

		duplicates, err := services.Clone.FindDuplicates(ctx, source, targetID)
		if err != nil {
			return MapError(fmt.Errorf("check for duplicates: %w", err))
		}
		if len(duplicates) > 0 {
			warn.Printf("%s already has %d objective(s) with this title:\n", targetName, len(duplicates))
			for _, d := range duplicates {
				fmt.Printf("  - %s\n", objectiveLink(services.Config.BaseURL, d.ID))
			}
			if !confirm("Clone anyway? (y/N): ") {
				fmt.Println("Clone cancelled.")
				return nil
			}
		}

		// The preview ends with the confirmation prompt text.
		fmt.Print(services.Clone.BuildPreview(source, targetName, targetID))
		if !confirm("") {
			fmt.Println("Clone cancelled.")
			return nil
		}

		newID, err := services.Clone.Clone(ctx, source, targetID)
		if err != nil {
			return MapError(fmt.Errorf("clone objective %d: %w", sourceID, err))
		}

		success.Printf("Cloned objective %d to %s as %d.\n", sourceID, targetName, newID)
		fmt.Println(objectiveLink(services.Config.BaseURL, newID))
		return nil
	},
}

var objectivesTeamCloneCmd = &cobra.Command{
	Use:   "teamclone <id> <team>",
	Short: "Clone an objective to every member of a team",
	Long: `Clone an objective to every member of a team. Members whose alias cannot
be resolved are reported; members who already hold an objective with
the same title are skipped. One confirmation covers the whole batch,
and the batch stops at the first failed clone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		sourceID, err := parseObjectiveID(args[0])
		if err != nil {
			return err
		}
		teamName := args[1]

		members, ok, err := services.Teams.Members(teamName)
		if err != nil {
			return err
		}
		if !ok {
			return NewCLIError(fmt.Sprintf("team %q does not exist", teamName), "Run '15five teams list' to see known teams", nil)
		}
		if len(members) == 0 {
			fmt.Printf("Team %q has no members.\n", teamName)
			return nil
		}

		source, err := services.Gateway.Objective(ctx, sourceID)
		if err != nil {
			return MapError(fmt.Errorf("get objective %d: %w", sourceID, err))
		}

		plan, err := services.Clone.PlanTeamClone(ctx, source, teamName, members,
			services.Aliases.Resolve, services.Users.DisplayName)
		if err != nil {
			return MapError(fmt.Errorf("plan team clone: %w", err))
		}

		if len(plan.Targets) == 0 {
			fmt.Print(services.Clone.BuildTeamPreview(plan))
			fmt.Println("\nNothing to clone.")
			return nil
		}
		fmt.Print(services.Clone.BuildTeamPreview(plan))
		if !confirm("") {
			fmt.Println("Team clone cancelled.")
			return nil
		}

		report := services.Clone.ExecuteTeamClone(ctx, plan, func(step application.TeamCloneStep) {
			if step.Err != nil {
				warn.Printf("[%d/%d] %s: FAILED: %v\n", step.Index, step.Total, step.Target.UserName, step.Err)
				return
			}
			success.Printf("[%d/%d] %s: created %d\n", step.Index, step.Total, step.Target.UserName, step.NewID)
		})

		fmt.Printf("\n%s\n", application.FormatTeamCloneReport(report))
		if report.Failed != nil {
			return MapError(fmt.Errorf("team clone stopped at %s: %w", report.Failed.Target.UserName, report.Failed.Err))
		}
		return nil
	},
}

var objectivesUpdateProgressCmd = &cobra.Command{
	Use:   "updateprogress <child_id>",
	Short: "Pull key-result progress from an objective's parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		childID, err := parseObjectiveID(args[0])
		if err != nil {
			return err
		}

		report, err := services.Sync.SyncFromParent(cmd.Context(), childID)
		if err != nil {
			return MapError(fmt.Errorf("update progress for %d: %w", childID, err))
		}
		fmt.Println(application.FormatSyncReport(report))
		return nil
	},
}

var objectivesUpdateChildProgressCmd = &cobra.Command{
	Use:   "updatechildprogress <parent_id>",
	Short: "Push a parent's key-result progress to all of its children",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		parentID, err := parseObjectiveID(args[0])
		if err != nil {
			return err
		}

		plan, err := services.Sync.BuildChildrenPlan(ctx, parentID)
		if err != nil {
			return MapError(fmt.Errorf("plan child update for %d: %w", parentID, err))
		}
		if plan == nil {
			fmt.Printf("Objective %d has no children.\n", parentID)
			return nil
		}

		preview := services.Sync.PreviewPlan(plan)
		fmt.Println(application.FormatChildrenPreview(preview))
		if !confirm("Apply these updates? (y/N): ") {
			fmt.Println("Update cancelled.")
			return nil
		}

		report := services.Sync.ExecutePlan(ctx, plan)
		fmt.Println(application.FormatChildrenReport(report))
		return nil
	},
}

func printObjectives(services *wiring.AppServices, objectives []objective.Objective) {
	if objectivesFull {
		fmt.Println(renderObjectivesFull(services.Config.BaseURL, objectives))
		return
	}
	fmt.Println(renderObjectivesCompact(services.Config.BaseURL, objectives))
}

// parseObjectiveID parses a numeric objective identifier.
func parseObjectiveID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, NewCLIError(fmt.Sprintf("invalid objective ID %q", arg), "Objective IDs are numeric, e.g. 4567890", err)
	}
	return id, nil
}

// resolveUser resolves an alias or numeric user ID.
func resolveUser(services *wiring.AppServices, identifier string) (int, error) {
	id, ok, err := services.Aliases.Resolve(identifier)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, NewCLIError(
			fmt.Sprintf("unknown user %q", identifier),
			"Pass a numeric user ID or create an alias with '15five alias create'",
			nil,
		)
	}
	return id, nil
}

func init() {
	objectivesListCmd.Flags().BoolVar(&objectivesFull, "full", false, "Show full objective details instead of the compact table")
	objectivesListByUserCmd.Flags().BoolVar(&objectivesFull, "full", false, "Show full objective details instead of the compact table")

	objectivesCmd.AddCommand(objectivesListCmd)
	objectivesCmd.AddCommand(objectivesListByUserCmd)
	objectivesCmd.AddCommand(objectivesListByTeamCmd)
	objectivesCmd.AddCommand(objectivesGetCmd)
	objectivesCmd.AddCommand(objectivesCloneCmd)
	objectivesCmd.AddCommand(objectivesTeamCloneCmd)
	objectivesCmd.AddCommand(objectivesUpdateProgressCmd)
	objectivesCmd.AddCommand(objectivesUpdateChildProgressCmd)
	RootCmd.AddCommand(objectivesCmd)
}
