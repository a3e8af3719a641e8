package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse the 15Five user directory",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		users, err := services.Users.List(cmd.Context())
		if err != nil {
			return MapError(fmt.Errorf("list users: %w", err))
		}
		fmt.Println(renderUsersTable(users))
		return nil
	},
}

var usersSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search users by name or title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		matches, err := services.Users.Search(cmd.Context(), args[0])
		if err != nil {
			return MapError(fmt.Errorf("search users: %w", err))
		}
		if len(matches) == 0 {
			fmt.Printf("No users matching %q.\n", args[0])
			return nil
		}
		fmt.Println(renderUsersTable(matches))
		return nil
	},
}

var usersRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the cached user directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		count, err := services.Users.Refresh(cmd.Context())
		if err != nil {
			return MapError(fmt.Errorf("refresh users: %w", err))
		}
		success.Printf("Refreshed %d users.\n", count)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersSearchCmd)
	usersCmd.AddCommand(usersRefreshCmd)
	RootCmd.AddCommand(usersCmd)
}
