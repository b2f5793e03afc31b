package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStagesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Lista las etapas del embudo en orden",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services(cmd.Context())
			if err != nil {
				return err
			}
			list, err := svc.registry.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, st := range list {
				def := ""
				if st.IsDefault {
					def = "sí"
				}
				rows = append(rows, []string{strconv.Itoa(st.Position), st.Name, def, st.ID})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Pos", "Etapa", "Default", "ID"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <nombre>",
		Short: "Agrega una etapa al final del embudo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services(cmd.Context())
			if err != nil {
				return err
			}
			st, err := svc.registry.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "etapa %q creada en la posición %d\n", st.Name, st.Position)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "default <id>",
		Short: "Marca la etapa como etapa por defecto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services(cmd.Context())
			if err != nil {
				return err
			}
			return svc.registry.SetDefault(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "order <id>...",
		Short: "Reordena las etapas (todas, en el orden nuevo)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services(cmd.Context())
			if err != nil {
				return err
			}
			_, err = svc.registry.Reorder(cmd.Context(), args)
			return err
		},
	})

	return cmd
}
