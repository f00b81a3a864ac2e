package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/amirbrooks/absorb/internal/store"
	"github.com/amirbrooks/absorb/internal/timeparsing"
)

// DisplayLayout is how dates appear in tables.
const DisplayLayout = "Jan 02, 2006 at 03:04PM"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
}

func displayDate(stamp string) string {
	t, err := timeparsing.ParseTimestamp(stamp)
	if err != nil {
		return stamp
	}
	return t.Format(DisplayLayout)
}

func tagList(tags []string) string {
	return strings.Join(tags, ", ")
}

// Tasks renders the task table. now drives the due-date hint.
func Tasks(tasks []store.Task, now time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		due := displayDate(t.DueDate)
		if hint := t.DueIn(now); hint != "" {
			due += "\n(" + hint + ")"
		}
		rows = append(rows, []string{
			IDStyle.Render(t.ID),
			t.Name,
			displayDate(t.Date),
			due,
			t.Priority,
			TagStyle.Render(tagList(t.Group)),
		})
	}
	return newTable("Task ID", "Task Name", "Date Added", "Due Date", "Priority", "Group").
		Rows(rows...).
		String()
}

func cardBlock(c store.Card) string {
	var b strings.Builder
	b.WriteString(IDStyle.Render(c.ID))
	b.WriteString("\n")
	b.WriteString(c.Name)
	b.WriteString("\n")
	if c.Description != "" {
		b.WriteString(WarnStyle.Render("description:"))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(store.ResolveDescription(c.Description), "\n"))
		b.WriteString("\n")
	}
	b.WriteString(TagStyle.Render("tags: " + tagList(c.Tags)))
	b.WriteString("\n")
	return b.String()
}

func column(cards []store.Card) string {
	blocks := make([]string, 0, len(cards))
	for _, c := range cards {
		blocks = append(blocks, cardBlock(c))
	}
	return strings.Join(blocks, "\n")
}

// Board renders the three-column kanban board.
func Board(b store.Board) string {
	return newTable("Completed", "Doing", "Planned").
		Row(column(b.Completed), column(b.Doing), column(b.Planned)).
		String()
}

func Ideas(ideas []store.Idea) string {
	rows := make([][]string, 0, len(ideas))
	for _, i := range ideas {
		rows = append(rows, []string{IDStyle.Render(i.ID), i.Name, TagStyle.Render(tagList(i.Tags))})
	}
	return newTable("ID", "Idea Name", "Tags").Rows(rows...).String()
}

// Idea renders the detail view used by `idea open`.
func Idea(i store.Idea) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(IDStyle.Render(fmt.Sprintf("Idea ID: %s", i.ID)))
	b.WriteString("\n")
	b.WriteString(AccentStyle.Bold(true).Render(i.Name))
	b.WriteString("\n")
	if i.Description != "" {
		b.WriteString("\n")
		b.WriteString(PassStyle.Bold(true).Render("Idea Description:"))
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(store.ResolveDescription(i.Description), "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(TagStyle.Render("Tags: " + tagList(i.Tags)))
	b.WriteString("\n")
	return b.String()
}
