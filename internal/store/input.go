package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Command-line sentinels.
const (
	SentinelUnchanged = "."
	SentinelFile      = "+file"
)

type FieldKind int

const (
	// Unchanged keeps the stored value on edit and means "no value" on create.
	Unchanged FieldKind = iota
	Literal
	// FromFile stores a path whose content is read at display time.
	FromFile
)

// Field is a command-line argument after sentinel decoding.
type Field struct {
	Kind FieldKind
	// Text is the literal value, or the file path for FromFile.
	Text string
	// Prompt supplies the path of a FromFile field whose Text is empty. Edits
	// call it only once some record matches.
	Prompt func() (string, error)
}

// ParseField decodes raw. For FromFile the path is not known yet; callers
// fill Text after prompting for it.
func ParseField(raw string) Field {
	switch strings.TrimSpace(raw) {
	case SentinelUnchanged:
		return Field{Kind: Unchanged}
	case SentinelFile:
		return Field{Kind: FromFile}
	default:
		return Field{Kind: Literal, Text: raw}
	}
}

func LiteralField(s string) Field { return Field{Kind: Literal, Text: s} }
func FileField(path string) Field { return Field{Kind: FromFile, Text: path} }

// value is what gets stored. Paths are cleaned but never resolved.
func (f Field) value() string {
	switch f.Kind {
	case Literal:
		return f.Text
	case FromFile:
		p := strings.TrimSpace(f.Text)
		if p == "" {
			return ""
		}
		return filepath.Clean(p)
	default:
		return ""
	}
}

func (f *Field) resolve() error {
	if f.Kind != FromFile || f.Text != "" || f.Prompt == nil {
		return nil
	}
	path, err := f.Prompt()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	f.Text, f.Prompt = path, nil
	return nil
}

// apply writes the field into dst unless it is Unchanged.
func (f Field) apply(dst *string) {
	if f.Kind == Unchanged {
		return
	}
	*dst = f.value()
}

// ResolveDescription returns the content of desc when it names a regular
// file, otherwise desc itself.
func ResolveDescription(desc string) string {
	if desc == "" || desc == SentinelUnchanged {
		return desc
	}
	fi, err := os.Stat(desc)
	if err != nil || !fi.Mode().IsRegular() {
		return desc
	}
	b, err := os.ReadFile(desc)
	if err != nil {
		return desc
	}
	return string(b)
}
