package main

import (
	"fmt"

	"github.com/jhoicas/pipeline-crm/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensure(cmd.Context()); err != nil {
				return err
			}
			applied, err := postgres.Migrate(cmd.Context(), ctx.pool, ctx.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Sin migraciones pendientes")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "aplicada %s\n", v)
			}
			return nil
		},
	}
}
