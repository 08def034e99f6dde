package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Browse the student directory",
	Long:  `List the students registered with the tuition center backend.`,
}

var membersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all students",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		students, err := appInstance.Directory.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("failed to list students: %w", err)
		}

		if len(students) == 0 {
			fmt.Println("No students found")
			return nil
		}

		fmt.Printf("%-10s %-30s\n", "ID", "Name")
		fmt.Println("----------------------------------------")
		for _, st := range students {
			fmt.Printf("%-10s %-30s\n", st.ID, truncate(st.FullName, 30))
		}

		fmt.Printf("\nTotal: %d student(s)\n", len(students))
		return nil
	},
}

func init() {
	membersCmd.AddCommand(membersListCmd)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
