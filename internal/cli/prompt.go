package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/amirbrooks/absorb/internal/store"
)

var errPromptAborted = errors.New("prompt cancelled")

// Prompter asks the user for the path behind a +file argument.
type Prompter interface {
	FilePath() (string, error)
}

const filePrompt = "Enter file path to load description"

// newPrompter uses an interactive form on a terminal and reads a single line
// otherwise, so piped input keeps working.
func newPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formPrompter{}
	}
	return &linePrompter{r: bufio.NewReader(in), out: out}
}

type formPrompter struct{}

func (formPrompter) FilePath() (string, error) {
	var path string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(filePrompt).
				Placeholder("e.g., ~/notes/idea.md").
				Value(&path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a path is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errPromptAborted
		}
		return "", err
	}
	return strings.TrimSpace(path), nil
}

type linePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

func (p *linePrompter) FilePath() (string, error) {
	fmt.Fprint(p.out, filePrompt+": ")
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read file path: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// field decodes a raw argument. For the +file sentinel the path prompt is
// deferred to the store, which asks only when the write will happen.
func (a *app) field(raw string) store.Field {
	f := store.ParseField(raw)
	if f.Kind == store.FromFile {
		f.Prompt = a.prompt.FilePath
	}
	return f
}
