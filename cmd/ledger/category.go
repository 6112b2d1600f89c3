package main

import (
	"github.com/spf13/cobra"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			c, err := a.categories.CreateCategory(cmd.Context(), owner, args[0])
			if err != nil {
				return err
			}
			return a.print(c)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			cats, err := a.categories.ListCategories(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return a.print(cats)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Print a category",
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
			c, err := a.categories.GetCategory(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return a.print(c)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category; its transactions become uncategorized",
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
			n, err := a.categories.DeleteCategory(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return a.print(struct {
				Deleted   int64
				Nullified int64
			}{id, n})
		},
	})

	return cmd
}
