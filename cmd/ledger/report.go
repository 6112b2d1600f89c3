package main

import (
	"github.com/spf13/cobra"

	"ledger/internal/core"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Current month totals, expense breakdown and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			d, err := a.summary.Dashboard(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return a.print(d)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var params core.FilterParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with optional filters and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			view, err := a.summary.List(cmd.Context(), owner, params)
			if err != nil {
				return err
			}
			return a.print(view)
		},
	}
	f := cmd.Flags()
	f.StringVar(&params.Category, "category", "", "category id")
	f.StringVar(&params.Type, "type", "", "income or expense")
	f.StringVar(&params.StartDate, "start-date", "", "inclusive lower bound, YYYY-MM-DD")
	f.StringVar(&params.EndDate, "end-date", "", "inclusive upper bound, YYYY-MM-DD")
	return cmd
}
