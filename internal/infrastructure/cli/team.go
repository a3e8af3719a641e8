package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Manage teams of aliases",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		teams, err := services.Teams.List()
		if err != nil {
			return err
		}
		names := teams.Names()
		if len(names) == 0 {
			fmt.Println("No teams defined.")
			return nil
		}
		for _, name := range names {
			members, _ := teams.Members(name)
			fmt.Printf("%-20s %d member(s): %s\n", name, len(members), strings.Join(members, ", "))
		}
		return nil
	},
}

var teamsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a team's members",
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
		if len(members) == 0 {
			fmt.Printf("Team %q has no members.\n", args[0])
			return nil
		}
		for _, member := range members {
			if id, resolved, _ := services.Aliases.Resolve(member); resolved {
				fmt.Printf("%-20s %s\n", member, services.Users.DisplayName(cmd.Context(), id))
				continue
			}
			fmt.Printf("%-20s (alias not found)\n", member)
		}
		return nil
	},
}

var teamsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Teams.Create(args[0]); err != nil {
			return err
		}
		success.Printf("Team %q created.\n", args[0])
		return nil
	},
}

var teamsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Teams.Delete(args[0]); err != nil {
			return err
		}
		success.Printf("Team %q deleted.\n", args[0])
		return nil
	},
}

var teamsAddCmd = &cobra.Command{
	Use:   "add <team> <alias>",
	Short: "Add an alias to a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Teams.AddMember(args[0], args[1], services.Aliases); err != nil {
			return err
		}
		success.Printf("Added %q to team %q.\n", args[1], args[0])
		return nil
	},
}

var teamsRemoveCmd = &cobra.Command{
	Use:   "remove <team> <alias>",
	Short: "Remove an alias from a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Teams.RemoveMember(args[0], args[1]); err != nil {
			return err
		}
		success.Printf("Removed %q from team %q.\n", args[1], args[0])
		return nil
	},
}

func init() {
	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsGetCmd)
	teamsCmd.AddCommand(teamsCreateCmd)
	teamsCmd.AddCommand(teamsDeleteCmd)
	teamsCmd.AddCommand(teamsAddCmd)
	teamsCmd.AddCommand(teamsRemoveCmd)
	RootCmd.AddCommand(teamsCmd)
}
