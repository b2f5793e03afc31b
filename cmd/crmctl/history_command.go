package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history <customer-id>",
		Short: "Historial de etapas y asignaciones de un cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services(cmd.Context())
			if err != nil {
				return err
			}
			var rows [][]string
			for e, err := range svc.history.HistoryFor(cmd.Context(), args[0]) {
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					e.CreatedAt.Local().Format(time.DateTime),
					e.CreatedAgo,
					e.StageName,
					e.EmployeeName,
					e.User,
					e.Notes,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Fecha", "Hace", "Etapa", "Empleado", "Usuario", "Notas"}, rows, nil,
			))
			return nil
		},
	}
}
