package main

import (
	"github.com/spf13/cobra"

	"ledger/internal/services"
)

// addInputFlags binds the transaction fields. Edits replace the whole row, so
// they also require --date and --type.
func addInputFlags(cmd *cobra.Command, in *services.TransactionInput, edit bool) {
	dateUsage, typeUsage := "date as YYYY-MM-DD; defaults to today", "income or expense; defaults to expense"
	if edit {
		dateUsage, typeUsage = "date as YYYY-MM-DD", "income or expense"
	}

	f := cmd.Flags()
	f.StringVar(&in.Amount, "amount", "", "positive amount, e.g. 12.50")
	f.StringVar(&in.Description, "description", "", "description (max 200 characters)")
	f.StringVar(&in.Category, "category", "", "category id; empty for uncategorized")
	f.StringVar(&in.Date, "date", "", dateUsage)
	f.StringVar(&in.Kind, "type", "", typeUsage)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	if edit {
		_ = cmd.MarkFlagRequired("date")
		_ = cmd.MarkFlagRequired("type")
	}
}

func newTxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Manage transactions",
	}

	var addIn services.TransactionInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			t, err := a.transactions.CreateTransaction(cmd.Context(), owner, addIn)
			if err != nil {
				return err
			}
			return a.print(t)
		},
	}
	addInputFlags(add, &addIn, false)

	var editIn services.TransactionInput
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace every field of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.transactions.UpdateTransaction(cmd.Context(), owner, id, editIn)
			if err != nil {
				return err
			}
			return a.print(t)
		},
	}
	addInputFlags(edit, &editIn, true)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.transactions.DeleteTransaction(cmd.Context(), owner, id); err != nil {
				return err
			}
			return a.print(struct{ Deleted int64 }{id})
		},
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.transactions.GetTransaction(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return a.print(t)
		},
	}

	cmd.AddCommand(add, edit, del, show)
	return cmd
}
