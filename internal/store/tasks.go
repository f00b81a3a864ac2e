package store

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/amirbrooks/absorb/internal/timeparsing"
)

type Task struct {
	Entry
	Date     string   `json:"date"`
	DueDate  string   `json:"due_date"`
	Priority string   `json:"priority"`
	Group    []string `json:"group"`
}

type AddTaskInput struct {
	Name string
	// Due is a date expression; Unchanged means now.
	Due      Field
	Priority Field
	Group    Field
}

// EditTaskInput fields left Unchanged keep their stored value. Due offsets
// are relative to the stored due date.
type EditTaskInput struct {
	Name     Field
	Due      Field
	Priority Field
	Group    Field
}

type ListFilter struct {
	Group string
}

func (w *Workspace) tasks() Collection[Task, *Task] {
	return Collection[Task, *Task]{Path: w.TasksPath()}
}

func (w *Workspace) AddTask(ctx context.Context, in AddTaskInput) (*Task, error) {
	due, err := w.parseDate(w.dueExpr(in.Due), "")
	if err != nil {
		return nil, err
	}

	c := w.tasks()
	items, err := load(w, c)
	if err != nil {
		return nil, err
	}
	t := Task{
		Entry:    Entry{Name: in.Name},
		Date:     timeparsing.Format(w.now()),
		DueDate:  due,
		Priority: strings.ToLower(in.Priority.value()),
		Group:    ExtractTags(in.Group.value()),
	}
	items, id := c.Append(items, t)
	t.ID = id
	if err := c.Save(items); err != nil {
		return nil, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Added %q in tasks.", t.Name))
	return &t, nil
}

// EditTask patches every task carrying id and returns how many matched.
// Nothing is written when none match.
func (w *Workspace) EditTask(ctx context.Context, id string, in EditTaskInput) (int, error) {
	c := w.tasks()
	items, err := load(w, c)
	if err != nil {
		return 0, err
	}
	var patchErr error
	n := c.Update(items, id, func(t *Task) {
		in.Name.apply(&t.Name)
		if in.Due.Kind != Unchanged {
			due, err := w.parseDate(w.dueExpr(in.Due), t.DueDate)
			if err != nil {
				patchErr = err
				return
			}
			t.DueDate = due
		}
		if in.Priority.Kind != Unchanged {
			t.Priority = strings.ToLower(in.Priority.value())
		}
		if in.Group.Kind != Unchanged {
			t.Group = ExtractTags(in.Group.value())
		}
	})
	if patchErr != nil {
		return 0, patchErr
	}
	if n == 0 {
		return 0, nil
	}
	if err := c.Save(items); err != nil {
		return n, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Modified Task %s in tasks.", id))
	return n, nil
}

func (w *Workspace) DeleteTask(ctx context.Context, id string) (int, error) {
	c := w.tasks()
	items, err := load(w, c)
	if err != nil {
		return 0, err
	}
	items, n := c.Remove(items, id)
	if n == 0 {
		return 0, nil
	}
	if err := c.Save(items); err != nil {
		return n, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Deleted Task %s from tasks.", id))
	return n, nil
}

// ListTasks returns tasks in file order. Unlike the write paths it passes
// ErrNotFound through so callers can report a missing collection.
func (w *Workspace) ListTasks(f ListFilter) ([]Task, error) {
	items, err := w.tasks().Load()
	if err != nil {
		return items, err
	}
	group := strings.TrimPrefix(strings.TrimSpace(f.Group), "@")
	if group == "" {
		return items, nil
	}
	out := []Task{}
	for _, t := range items {
		if containsTag(t.Group, group) {
			out = append(out, t)
		}
	}
	return out, nil
}

// DueIn describes the distance to the due date in whole days, rounded down.
func (t *Task) DueIn(now time.Time) string {
	due, err := timeparsing.ParseTimestamp(t.DueDate)
	if err != nil {
		return ""
	}
	days := int(math.Floor(due.Sub(now).Hours() / 24))
	switch {
	case days == 0:
		return "Due today."
	case days < 0:
		return fmt.Sprintf("%d days overdue.", -days)
	default:
		return fmt.Sprintf("%d days to due date.", days)
	}
}
