package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/absorb/internal/store"
	"github.com/amirbrooks/absorb/internal/ui"
)

func newKanbanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kanban",
		Short: "Manage cards on the planned/doing/completed board",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <status> <description> <tags>",
		Short: "Add a card",
		Long: `Add a card. status is planned, doing or completed; other values are kept
but never shown on the board. description may be "+file" to store a file path.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := a.field(args[2])
			card, err := a.ws.AddCard(cmd.Context(), store.AddCardInput{
				Name:        args[0],
				Status:      args[1],
				Description: desc,
				Tags:        store.ParseField(args[3]),
			})
			if err != nil {
				return a.writeFailed("kanban add", err)
			}
			a.println(ui.Success(fmt.Sprintf("%q has been added to the board!", card.Name)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			n, err := a.ws.DeleteCard(cmd.Context(), id)
			if err != nil {
				return a.writeFailed("kanban delete", err)
			}
			if n == 0 {
				a.warn(fmt.Sprintf("No card with id %s.", id))
				return nil
			}
			a.println(ui.Success(fmt.Sprintf("Card %s has been removed from the board!", id)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id> <name> <description> <tags>",
		Short: "Edit a card; \".\" keeps a field",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			desc := a.field(args[2])
			n, err := a.ws.EditCard(cmd.Context(), id, store.EditCardInput{
				Name:        store.ParseField(args[1]),
				Description: desc,
				Tags:        store.ParseField(args[3]),
			})
			if err != nil {
				return a.writeFailed("kanban edit", err)
			}
			if n == 0 {
				a.warn(fmt.Sprintf("No card with id %s.", id))
				return nil
			}
			a.println(ui.Success(fmt.Sprintf("Card %s has been modified in the board!", id)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move-card <id> <new_status>",
		Short: "Move a card to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			n, err := a.ws.MoveCard(cmd.Context(), id, args[1])
			if err != nil {
				return a.writeFailed("kanban move-card", err)
			}
			if n == 0 {
				a.warn(fmt.Sprintf("No card with id %s.", id))
				return nil
			}
			a.println(ui.Success(fmt.Sprintf("Card %s has been moved to %s!", id, store.NormalizeStatus(args[1]))))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.ws.ListCards()
			if err != nil {
				return a.readFailed("kanban show", err, false)
			}
			a.println(ui.Board(store.BucketCards(cards)))
			return nil
		},
	})

	return cmd
}
