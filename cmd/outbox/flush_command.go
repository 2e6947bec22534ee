package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFlushCommand(ctx *commandContext) *cobra.Command {
	var stream string
	var force bool

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Delete all unclaimed spooled payloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("flush permanently deletes spooled payloads; re-run with --force")
			}
			stores, err := ctx.storesFor(stream)
			if err != nil {
				return err
			}

			total := 0
			for _, store := range stores {
				claimed := store.Claim()
				store.Commit(claimed)
				total += len(claimed)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d spooled payload(s).\n", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&stream, "stream", "", "Limit the flush to one stream folder")
	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion")
	return cmd
}
