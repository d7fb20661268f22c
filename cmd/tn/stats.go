package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts by status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()

		counts, err := svc.CountByStatus()
		if err != nil {
			fail(err)
		}

		fmt.Println(renderHeading("Tasks"))
		fmt.Printf("  Total:     %d\n", counts.Total)
		fmt.Printf("  %s Pending:   %d\n", statusGlyph("pending"), counts.Pending)
		fmt.Printf("  %s Completed: %d\n", statusGlyph("completed"), counts.Completed)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
