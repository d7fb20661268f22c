package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/jsonstore"
)

var (
	listStatus string
	listPage   int
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	Long: `List tasks sorted by creation time, newest first.

Filter with --status (pending or completed) and page through long lists
with --page; --limit controls the page size.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if listPage < 1 {
			fail(fmt.Errorf("page must be >= 1"))
		}
		svc := newService()

		var tasks []jsonstore.TaskRecord
		var err error
		offset := (listPage - 1) * listLimit

		if listStatus != "" {
			tasks, err = svc.FilterByStatus(listStatus)
			if err == nil {
				tasks = slicePage(tasks, offset, listLimit)
			}
		} else {
			tasks, err = svc.Paginate(offset, listLimit)
		}
		if err != nil {
			fail(err)
		}

		if len(tasks) == 0 {
			fmt.Println(styleDim.Render("No tasks."))
			return
		}
		for _, task := range tasks {
			fmt.Println(renderTask(task))
		}
	},
}

func slicePage(tasks []jsonstore.TaskRecord, offset, limit int) []jsonstore.TaskRecord {
	if offset >= len(tasks) {
		return nil
	}
	end := offset + limit
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[offset:end]
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending|completed)")
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "tasks per page")
	rootCmd.AddCommand(listCmd)
}
