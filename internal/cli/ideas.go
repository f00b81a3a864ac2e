package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/absorb/internal/store"
	"github.com/amirbrooks/absorb/internal/ui"
)

func newIdeaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "idea",
		Aliases: []string{"ideas"},
		Short:   "Capture ideas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new <name> <description> <tags>",
		Short: "Capture a new idea",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := a.field(args[1])
			idea, err := a.ws.AddIdea(cmd.Context(), store.AddIdeaInput{
				Name:        args[0],
				Description: desc,
				Tags:        store.ParseField(args[2]),
			})
			if err != nil {
				return a.writeFailed("idea new", err)
			}
			a.println(ui.Success(fmt.Sprintf("%q has been added to ideas!", idea.Name)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id> <name> <description> <tags>",
		Short: "Edit an idea; \".\" keeps a field",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			desc := a.field(args[2])
			n, err := a.ws.EditIdea(cmd.Context(), id, store.EditIdeaInput{
				Name:        store.ParseField(args[1]),
				Description: desc,
				Tags:        store.ParseField(args[3]),
			})
			if err != nil {
				return a.writeFailed("idea edit", err)
			}
			if n == 0 {
				a.warn(fmt.Sprintf("No idea with id %s.", id))
				return nil
			}
			a.println(ui.Success(fmt.Sprintf("Idea %s has been modified!", id)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "open <id>",
		Short: "Show one idea with its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ideas, err := a.ws.GetIdeas(args[0])
			if err != nil {
				return a.readFailed("idea open", err, false)
			}
			if len(ideas) == 0 {
				a.warn(fmt.Sprintf("No idea with id %s.", args[0]))
				return nil
			}
			for _, idea := range ideas {
				a.println(ui.Idea(idea))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List all ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ideas, err := a.ws.ListIdeas()
			if err != nil {
				return a.readFailed("idea show", err, false)
			}
			a.println(ui.Ideas(ideas))
			return nil
		},
	})

	return cmd
}
