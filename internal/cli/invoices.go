package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Review invoices",
	Long:  `List invoices for the configured member, with search and status filtering.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices with revenue totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")

		invoices, err := appInstance.List.FetchInvoices(ctx)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		label := appInstance.Config.Billing.CurrencyLabel
		conv := appInstance.Config.Billing.ConversionFactor

		// Totals always cover the full result set, not the filtered view
		stats := appInstance.List.Stats(invoices)
		fmt.Printf("Total Revenue: %s %.2f\n", label, stats.Total)
		fmt.Printf("Paid: %s %.2f   Pending: %s %.2f   Overdue: %s %.2f\n\n",
			label, stats.Paid, label, stats.Pending, label, stats.Overdue)

		rows := appInstance.List.Filter(invoices, search, status)
		if len(rows) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-12s %-25s %-14s %-12s %-12s %-10s\n",
			"Invoice", "Student", "Amount", "Issued", "Due", "Status")
		fmt.Println("-------------------------------------------------------------------------------------------")
		for _, inv := range rows {
			fmt.Printf("%-12s %-25s %s %-11.2f %-12s %-12s %-10s\n",
				truncate(inv.ID, 12),
				truncate(inv.StudentName, 25),
				label,
				inv.Amount*conv,
				inv.IssueDate,
				inv.DueDate,
				inv.Status,
			)
		}

		fmt.Printf("\nShowing %d of %d invoice(s)\n", len(rows), len(invoices))
		return nil
	},
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)

	invoicesListCmd.Flags().String("status", "all", "Filter by status (all, paid, pending, overdue)")
	invoicesListCmd.Flags().String("search", "", "Match against student name or invoice number")
}
