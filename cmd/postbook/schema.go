package main

import (
	"postbook/internal/database"

	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create or inspect the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create missing tables and constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.ApplySchema(cmd.Context(), a.db); err != nil {
				return err
			}
			return a.print(cmd, database.GetSchemaStatus(cmd.Context(), a.db))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which tables and constraints exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, database.GetSchemaStatus(cmd.Context(), a.db))
		},
	})

	return cmd
}
