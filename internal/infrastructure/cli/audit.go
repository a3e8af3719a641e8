package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the local log of remote mutations",
}

var auditTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show every recorded clone and progress update",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		events, err := services.Audit.Timeline()
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No recorded operations.")
			return nil
		}
		for _, e := range events {
			fmt.Printf("%s  %-28s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Actor)
			for k, v := range e.Metadata {
				fmt.Printf("    %s: %v\n", k, v)
			}
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of the operation log",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		fmt.Println("Verifying operation log integrity...")
		violations, err := services.Audit.VerifyIntegrity()
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if len(violations) == 0 {
			success.Println("Operation log is intact and verified.")
			return nil
		}

		fmt.Printf("Found %d integrity violations:\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  - %s\n", v)
		}
		return verificationError(violations)
	},
}

// verificationError turns violations into an error instead of exiting,
// so a failed verify inside the shell does not kill the session.
func verificationError(violations []string) error {
	return NewCLIError(
		fmt.Sprintf("operation log failed verification with %d violations", len(violations)),
		"The events file may have been edited by hand; remote state is unaffected",
		nil,
	)
}

func init() {
	auditCmd.AddCommand(auditTimelineCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	RootCmd.AddCommand(auditCmd)
}
