package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"monchai-insurance/app"
	"monchai-insurance/config"
	"monchai-insurance/services"
	"monchai-insurance/views"
)

func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

func windowFlag(cmd *cobra.Command, a *app.App) int {
	days, _ := cmd.Flags().GetInt("days")
	if days == 0 {
		days = a.Config.ExpiryWindowDays
	}
	return services.ClampWindow(days)
}

func dueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List customers with an expiry inside the window",
		Long: `List customers whose act, tax or voluntary policy expires inside the
window (overdue included), nearest first. Statuses are reconciled and
written back exactly as the web page does.

Examples:
  renewals due
  renewals due --days 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			report := a.Customers.Due(ctx, windowFlag(cmd, a))
			printDue(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "window in days (default EXPIRY_WINDOW_DAYS)")
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Correct statuses and names of due customers in the sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			report := a.Customers.Due(ctx, services.AlertWindowDays)
			printWriteBacks(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the due list to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			report := a.Customers.Due(ctx, windowFlag(cmd, a))
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = services.DueWorkbookName(report, a.Customers.Location())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			if err := services.WriteDueWorkbook(f, report, a.Customers.Location()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d customers -> %s\n", color.New(color.FgGreen).Sprint("✓"), len(report.Items), out)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "window in days (default EXPIRY_WINDOW_DAYS)")
	cmd.Flags().StringP("out", "o", "", "output file (default renewals-due-<date>.xlsx)")
	return cmd
}

func remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run the daily reminder job once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.Reminders.SendDailyReminders(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "due: %d\n", summary.Due)
			fmt.Fprintf(w, "sent: %s\n", color.New(color.FgGreen).Sprint(summary.Sent))
			fmt.Fprintf(w, "skipped: %d\n", summary.Skipped)
			if summary.Failed > 0 {
				fmt.Fprintf(w, "failed: %s\n", color.New(color.FgRed).Sprint(summary.Failed))
			}
			return nil
		},
	}
}

func printDue(w io.Writer, report services.DueReport) {
	if len(report.Items) == 0 {
		fmt.Fprintf(w, "No customers due within %d days\n", report.WindowDays)
		printWriteBacks(w, report)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tDAYS\tPLATE\tNAME\tPHONE\tSTATUS")
	for _, item := range report.Items {
		c := item.Customer
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.RowNumber, colorDays(item.MinDays), c.LicensePlate, c.CustomerName, c.Phone, item.Status)
	}
	tw.Flush()
	fmt.Fprintln(w)
	printWriteBacks(w, report)
}

func printWriteBacks(w io.Writer, report services.DueReport) {
	switch {
	case report.WriteBacks == 0:
		fmt.Fprintln(w, "Statuses already consistent")
	case report.Failed == 0:
		fmt.Fprintf(w, "%s %d status write-backs\n", color.New(color.FgGreen).Sprint("✓"), report.WriteBacks)
	default:
		fmt.Fprintf(w, "%s %d of %d status write-backs failed (run %s)\n",
			color.New(color.FgYellow).Sprint("!"), report.Failed, report.WriteBacks, report.RunID)
	}
}

func colorDays(days *int) string {
	label := views.DaysLabel(days)
	switch views.DaysClass(days) {
	case "overdue":
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case "urgent":
		return color.New(color.FgYellow).Sprint(label)
	}
	return label
}
