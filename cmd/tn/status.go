package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark tasks completed",
	Long: `Mark one or more tasks completed.

With multiple IDs the batch is all-or-nothing: an unknown ID leaves
every task unchanged.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()

		if len(args) == 1 {
			task, err := svc.MarkCompleted(args[0])
			if err != nil {
				fail(err)
			}
			fmt.Println(renderTask(*task))
			return
		}

		count, err := svc.MarkAllCompleted(args)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s %d tasks completed\n", statusGlyph("completed"), count)
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>...",
	Short: "Mark tasks pending again",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()

		if len(args) == 1 {
			task, err := svc.MarkPending(args[0])
			if err != nil {
				fail(err)
			}
			fmt.Println(renderTask(*task))
			return
		}

		count, err := svc.MarkAllPending(args)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s %d tasks back to pending\n", statusGlyph("pending"), count)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
}
