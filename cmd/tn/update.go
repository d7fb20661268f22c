package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task's title or description",
	Long: `Update the title and/or description of an existing task.

At least one of --title or --description must be given. An empty
--description clears it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var title, description *string
		if cmd.Flags().Changed("title") {
			title = &updateTitle
		}
		if cmd.Flags().Changed("description") {
			description = &updateDescription
		}

		svc := newService()
		task, err := svc.Update(args[0], title, description)
		if err != nil {
			fail(err)
		}

		fmt.Printf("Updated %s\n", styleID.Render(task.ID))
		fmt.Println(renderTask(*task))
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	rootCmd.AddCommand(updateCmd)
}
