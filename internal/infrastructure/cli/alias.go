package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage short names for user IDs",
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		book, err := services.Aliases.List()
		if err != nil {
			return err
		}
		names := book.Names()
		if len(names) == 0 {
			fmt.Println("No aliases defined.")
			return nil
		}
		for _, name := range names {
			id, _ := book.Resolve(name)
			fmt.Printf("%-20s %d  %s\n", name, id, services.Users.DisplayName(cmd.Context(), id))
		}
		return nil
	},
}

var aliasCreateCmd = &cobra.Command{
	Use:   "create <name> <user_id>",
	Short: "Create an alias for a user ID",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		userID, err := strconv.Atoi(args[1])
		if err != nil || userID <= 0 {
			return NewCLIError(fmt.Sprintf("invalid user ID %q", args[1]), "Find user IDs with '15five users list'", err)
		}

		if err := services.Aliases.Create(args[0], userID); err != nil {
			return err
		}
		success.Printf("Alias %q -> %d created.\n", args[0], userID)
		return nil
	},
}

var aliasDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		if err := services.Aliases.Remove(args[0]); err != nil {
			return err
		}
		success.Printf("Alias %q deleted.\n", args[0])
		return nil
	},
}

func init() {
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasCreateCmd)
	aliasCmd.AddCommand(aliasDeleteCmd)
	RootCmd.AddCommand(aliasCmd)
}
