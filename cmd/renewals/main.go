package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "renewals",
		Short: "Operator tools for the Monchai Insurance renewal tracker",
		Long: `renewals runs the renewal tracker's jobs from a shell: list the due
customers, reconcile their statuses, export the list or send reminders now.
It reads the same environment (and .env) as the web server.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(dueCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(remindCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
