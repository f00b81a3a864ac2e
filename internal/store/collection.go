package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// Entry holds the fields every record shares. Domain types embed it first so
// that id and name lead the JSON object.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (e *Entry) Key() string      { return e.ID }
func (e *Entry) setKey(id string) { e.ID = id }

// record is satisfied by pointers to the domain types.
type record[R any] interface {
	*R
	Key() string
	setKey(string)
}

// Collection is one JSON array file holding records of a single domain.
// Every mutation is a full read-modify-write; there is no locking.
type Collection[R any, P record[R]] struct {
	Path string
}

// Load reads the whole collection. A missing file is recreated as an empty
// array and reported as ErrNotFound alongside an empty slice. Anything that is
// not a JSON array yields ErrCorrupt and the file is left as is.
func (c Collection[R, P]) Load() ([]R, error) {
	b, err := os.ReadFile(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if werr := atomicWriteFile(c.Path, []byte("[]"), 0o644); werr != nil {
			return []R{}, fmt.Errorf("%w: %s (recreate failed: %v)", ErrNotFound, c.Path, werr)
		}
		return []R{}, fmt.Errorf("%w: %s", ErrNotFound, c.Path)
	}
	if err != nil {
		return nil, err
	}
	var items []R
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.Path, err)
	}
	// null unmarshals without error but is not an array.
	if items == nil {
		return nil, fmt.Errorf("%w: %s: not a JSON array", ErrCorrupt, c.Path)
	}
	return items, nil
}

// Append assigns the next count-based id to rec and adds it at the end.
// After a delete the next id may repeat an existing one.
func (c Collection[R, P]) Append(items []R, rec R) ([]R, string) {
	id := "#" + strconv.Itoa(len(items)+1)
	P(&rec).setKey(id)
	return append(items, rec), id
}

// Update applies patch in place to every record carrying id and reports how
// many matched.
func (c Collection[R, P]) Update(items []R, id string, patch func(P)) int {
	n := 0
	for i := range items {
		p := P(&items[i])
		if p.Key() == id {
			patch(p)
			n++
		}
	}
	return n
}

// Remove drops every record carrying id.
func (c Collection[R, P]) Remove(items []R, id string) ([]R, int) {
	out := make([]R, 0, len(items))
	for i := range items {
		if P(&items[i]).Key() == id {
			continue
		}
		out = append(out, items[i])
	}
	return out, len(items) - len(out)
}

// Find returns copies of the records carrying id, in file order.
func (c Collection[R, P]) Find(items []R, id string) []R {
	var out []R
	for i := range items {
		if P(&items[i]).Key() == id {
			out = append(out, items[i])
		}
	}
	return out
}

// Save rewrites the whole file.
func (c Collection[R, P]) Save(items []R) error {
	if items == nil {
		items = []R{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return atomicWriteFile(c.Path, b, 0o644)
}
