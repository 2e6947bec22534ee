package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"outbox/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show spool occupancy and environment checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			stores, err := ctx.storesFor("")
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(stores))
			for _, store := range stores {
				dir := store.Dir()
				if store.Disabled() {
					dir = "(disabled)"
				}
				rows = append(rows, []string{
					strconv.Itoa(store.Count()),
					strconv.Itoa(store.Capacity()),
					yesNo(store.Disabled()),
					dir,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Files", "Capacity", "Disabled", "Directory"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
			))

			checkRows := make([][]string, 0, 3)
			for _, result := range preflight.RunAll(cfg) {
				status := "ok"
				if !result.Passed {
					status = "FAIL"
				}
				checkRows = append(checkRows, []string{result.Name, status, result.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "Status", "Detail"},
				checkRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
