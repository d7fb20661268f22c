package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete tasks permanently",
	Long: `Delete one or more tasks. There is no trash; deleted tasks are gone.

Unknown IDs are skipped; the count of tasks actually removed is printed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()

		if len(args) == 1 {
			removed, err := svc.Delete(args[0])
			if err != nil {
				fail(err)
			}
			if !removed {
				fmt.Printf("No task with ID %s\n", styleID.Render(args[0]))
				return
			}
			fmt.Printf("Deleted %s\n", styleID.Render(args[0]))
			return
		}

		count, err := svc.DeleteAll(args)
		if err != nil {
			fail(err)
		}
		fmt.Printf("Deleted %d of %d tasks\n", count, len(args))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
