package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/spf13/cobra"
)

func newBoardCommand(ctx *commandContext) *cobra.Command {
	var employeeID string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Muestra el tablero de clientes por etapa",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services(cmd.Context())
			if err != nil {
				return err
			}
			var filter *string
			if employeeID != "" {
				filter = &employeeID
			}
			cols, err := svc.board.Board(cmd.Context(), filter)
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), cols)
			return nil
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "Solo los clientes de este empleado")
	return cmd
}

func printBoard(w io.Writer, cols []dto.BoardColumnResponse) {
	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		names := make([]string, 0, len(c.Records))
		for _, r := range c.Records {
			names = append(names, r.Title)
		}
		rows = append(rows, []string{c.Title, strconv.Itoa(len(c.Records)), strings.Join(names, "\n")})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Etapa", "Clientes", "Nombres"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
}
