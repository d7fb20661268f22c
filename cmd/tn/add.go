package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new pending task with the given title.

Titles are trimmed and limited to 10 words. An optional description
(up to 500 characters) can be attached with -d.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()

		task, err := svc.Add(args[0], addDescription)
		if err != nil {
			fail(err)
		}

		fmt.Printf("Added %s\n", styleID.Render(task.ID))
		fmt.Println(renderTask(*task))
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	rootCmd.AddCommand(addCmd)
}
