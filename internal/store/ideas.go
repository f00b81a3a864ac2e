package store

import (
	"context"
	"fmt"
	"strings"
)

type Idea struct {
	Entry
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type AddIdeaInput struct {
	Name        string
	Description Field
	Tags        Field
}

type EditIdeaInput struct {
	Name        Field
	Description Field
	Tags        Field
}

func (w *Workspace) ideas() Collection[Idea, *Idea] {
	return Collection[Idea, *Idea]{Path: w.IdeasPath()}
}

func (w *Workspace) AddIdea(ctx context.Context, in AddIdeaInput) (*Idea, error) {
	c := w.ideas()
	items, err := load(w, c)
	if err != nil {
		return nil, err
	}
	if err := in.Description.resolve(); err != nil {
		return nil, err
	}
	idea := Idea{
		Entry:       Entry{Name: in.Name},
		Description: in.Description.value(),
		Tags:        ExtractTags(in.Tags.value()),
	}
	items, idea.ID = c.Append(items, idea)
	if err := c.Save(items); err != nil {
		return nil, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Added idea %q", idea.Name))
	return &idea, nil
}

func (w *Workspace) EditIdea(ctx context.Context, id string, in EditIdeaInput) (int, error) {
	c := w.ideas()
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
	n := c.Update(items, id, func(idea *Idea) {
		in.Name.apply(&idea.Name)
		in.Description.apply(&idea.Description)
		if in.Tags.Kind != Unchanged {
			idea.Tags = ExtractTags(in.Tags.value())
		}
	})
	if n == 0 {
		return 0, nil
	}
	if err := c.Save(items); err != nil {
		return n, fmt.Errorf("save %s: %w", c.Path, err)
	}
	w.commit(ctx, c.Path, fmt.Sprintf("Modified Idea %s in ideas.", id))
	return n, nil
}

// ListIdeas passes ErrNotFound through with an empty slice.
func (w *Workspace) ListIdeas() ([]Idea, error) {
	return w.ideas().Load()
}

// GetIdeas returns every idea carrying id; duplicates are possible.
func (w *Workspace) GetIdeas(id string) ([]Idea, error) {
	c := w.ideas()
	items, err := c.Load()
	if err != nil {
		return nil, err
	}
	return c.Find(items, strings.TrimSpace(id)), nil
}
