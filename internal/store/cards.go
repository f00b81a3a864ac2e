package store

import (
	"context"
	"fmt"
	"strings"
)

// Board columns. Any other status is stored but never shown on the board.
const (
	StatusPlanned   = "planned"
	StatusDoing     = "doing"
	StatusCompleted = "completed"
)

type Card struct {
	Entry
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type AddCardInput struct {
	Name        string
	Status      string
	Description Field
	Tags        Field
}

type EditCardInput struct {
	Name        Field
	Description Field
	Tags        Field
}

// Board is the kanban view of a card collection.
type Board struct {
	Completed []Card
	Doing     []Card
	Planned   []Card
}

func (w *Workspace) cards() Collection[Card, *Card] {
	return Collection[Card, *Card]{Path: w.KanbanPath()}
}

func (w *Workspace) AddCard(ctx context.Context, in AddCardInput) (*Card, error) {
	c := w.cards()
	items, err := load(w, c)
	if err != nil {
		return nil, err
	}
	if err := in.Description.resolve(); err != nil {
		return nil, err
	}
	card := Card{
		Entry:       Entry{Name: in.Name},
		Status:      NormalizeStatus(in.Status),
		Description: in.Description.value(),
		Tags:        ExtractTags(in.Tags.value()),
	}
	items, card.ID = c.Append(items, card)
	if err := c.Save(items); err != nil {
		return nil, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Added card %q to the kanban board.", card.Name))
	return &card, nil
}

func (w *Workspace) EditCard(ctx context.Context, id string, in EditCardInput) (int, error) {
	c := w.cards()
	items, err := load(w, c)
	if err != nil {
		return 0, err
	}
	if len(c.Find(items, id)) == 0 {
		return 0, nil
	}
	if err := in.Description.resolve(); err != nil {
		return 0, err
	}
	n := c.Update(items, id, func(card *Card) {
		in.Name.apply(&card.Name)
		in.Description.apply(&card.Description)
		if in.Tags.Kind != Unchanged {
			card.Tags = ExtractTags(in.Tags.value())
		}
	})
	if n == 0 {
		return 0, nil
	}
	if err := c.Save(items); err != nil {
		return n, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Modified Card %s in the kanban board.", id))
	return n, nil
}

// MoveCard sets the status of every card carrying id.
func (w *Workspace) MoveCard(ctx context.Context, id, status string) (int, error) {
	status = NormalizeStatus(status)
	c := w.cards()
	items, err := load(w, c)
	if err != nil {
		return 0, err
	}
	n := c.Update(items, id, func(card *Card) { card.Status = status })
	if n == 0 {
		return 0, nil
	}
	if err := c.Save(items); err != nil {
		return n, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Moved Card %s to %s in the kanban board.", id, status))
	return n, nil
}

func (w *Workspace) DeleteCard(ctx context.Context, id string) (int, error) {
	c := w.cards()
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
	w.commit(ctx, c.Path, fmt.Sprintf("Deleted Card %s from the kanban board.", id))
	return n, nil
}

// ListCards passes ErrNotFound through with an empty slice.
func (w *Workspace) ListCards() ([]Card, error) {
	return w.cards().Load()
}

// BucketCards groups cards by exact status, keeping file order per column.
func BucketCards(cards []Card) Board {
	var b Board
	for _, card := range cards {
		switch card.Status {
		case StatusCompleted:
			b.Completed = append(b.Completed, card)
		case StatusDoing:
			b.Doing = append(b.Doing, card)
		case StatusPlanned:
			b.Planned = append(b.Planned, card)
		}
	}
	return b
}

// NormalizeStatus is the form a status is stored and reported in.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
