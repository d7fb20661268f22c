package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tasknest/tasknest/internal/cli"
	"github.com/tasknest/tasknest/internal/jsonstore"
)

var (
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	stylePending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleID      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleDoneTxt = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

func renderError(s string) string {
	return styleError.Render(s)
}

func renderHeading(s string) string {
	return styleHeading.Render(s)
}

// statusGlyph returns the colored check/circle for a task status.
func statusGlyph(status string) string {
	if status == cli.StatusCompleted {
		return styleDone.Render("✓")
	}
	return stylePending.Render("○")
}

// renderTask formats one task as a listing line, with the description
// dimmed underneath when present.
func renderTask(task jsonstore.TaskRecord) string {
	title := task.Title
	if task.Status == cli.StatusCompleted {
		title = styleDoneTxt.Render(title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s", statusGlyph(task.Status), styleID.Render(task.ID), title)
	if task.Description != "" {
		fmt.Fprintf(&b, "\n     %s", styleDim.Render(task.Description))
	}
	return b.String()
}
