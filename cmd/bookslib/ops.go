package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"bookslib/internal/forms"
	"bookslib/internal/manager"
	"bookslib/internal/printer"
)

func newAddCmd(c *cli) *cobra.Command {
	var author, title, copies string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an item to the registry",
		Example: "  bookslib add --author 'Ursula K. Le Guin' --title 'The Dispossessed' --copies 3",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd.Context(), c, manager.OpAddItem, func(m *manager.Manager) error {
				if err := m.UpdateField(manager.FormAddItem, forms.FieldAuthor, author); err != nil {
					return err
				}
				if err := m.UpdateField(manager.FormAddItem, forms.FieldTitle, title); err != nil {
					return err
				}
				return m.UpdateField(manager.FormAddItem, forms.FieldCopies, copies)
			})
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&copies, "copies", "0", "Number of copies")
	return cmd
}

// newItemCmd builds checkout and return, which share the item id form shape.
func newItemCmd(c *cli, name, short string) *cobra.Command {
	op, form := manager.OpCheckOut, manager.FormCheckout
	if name == "return" {
		op, form = manager.OpReturn, manager.FormReturn
	}
	return &cobra.Command{
		Use:   name + " ITEM_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd.Context(), c, op, func(m *manager.Manager) error {
				return m.UpdateField(form, forms.FieldItemID, strings.TrimSpace(args[0]))
			})
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd.Context(), c, manager.OpListAvailable, nil)
		},
	}
}

func newStateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show identity, registry and binding status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ctxOrBackground(cmd.Context()), c.cfg, c.log, nil)
			if err != nil {
				return c.out.Error("Cannot start", err.Error(), nil)
			}
			defer a.Close()
			a.bindOnce()
			c.out.State(a.mgr.Status())
			return nil
		},
	}
}

// runOp binds the key file identity, fills the form and runs op to settlement.
func runOp(ctx context.Context, c *cli, op manager.Op, fill func(*manager.Manager) error) error {
	ctx = ctxOrBackground(ctx)
	events := manager.NewMemoryPublisher()
	a, err := newApp(ctx, c.cfg, c.log, events)
	if err != nil {
		return c.out.Error("Cannot start", err.Error(), nil)
	}
	defer a.Close()
	a.bindOnce()

	if fill != nil {
		if err := fill(a.mgr); err != nil {
			return c.out.Error("Invalid input", err.Error(), nil)
		}
	}
	c.out.Step("%s: submitting to %s", op, c.cfg.RegistryAddress)
	out, err := a.mgr.Run(ctx, op)
	if err != nil {
		if manager.IsNotConnected(err) {
			explanation := "No usable identity in " + a.provider.Path() + "."
			if st := a.binder.Status(); st.Err != "" {
				explanation = "The registry handle could not be built: " + st.Err
			}
			return c.out.Error("Not connected", explanation, []string{
				"Create one with `bookslib keygen`.",
				"Point --key-file at a hex key, keystore JSON or mnemonic file.",
			})
		}
		return c.out.Error(string(op)+" not started", err.Error(), nil)
	}
	printTranscript(c.out, events.Events())
	return c.out.Outcome(manager.OutcomeResponse(out))
}

// printTranscript shows the attempt lifecycle as published by the manager.
func printTranscript(p *printer.Printer, events []manager.Event) {
	for _, e := range events {
		switch e.Name {
		case manager.EventAttemptPending:
			p.Step("%s: attempt %s pending", e.Op, e.AttemptID)
		case manager.EventAttemptSucceeded:
			if tx, _ := e.Fields["tx"].(string); tx != "" {
				p.Step("%s: settled in %s", e.Op, tx)
			} else {
				p.Step("%s: settled", e.Op)
			}
		case manager.EventAttemptFailed:
			kind, _ := e.Fields["kind"].(string)
			p.Step("%s: failed (%s)", e.Op, kind)
		}
	}
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
