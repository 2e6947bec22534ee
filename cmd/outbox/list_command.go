package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var stream string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List spooled payload files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := ctx.storesFor(stream)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, store := range stores {
				if store.Disabled() {
					continue
				}
				entries, err := os.ReadDir(store.Dir())
				if err != nil {
					return fmt.Errorf("scan %s: %w", store.Dir(), err)
				}
				for _, entry := range entries {
					if entry.IsDir() {
						continue
					}
					info, err := entry.Info()
					if err != nil {
						continue
					}
					rows = append(rows, []string{
						filepath.Base(store.Dir()),
						entry.Name(),
						strconv.FormatInt(info.Size(), 10),
						formatAge(time.Since(info.ModTime())),
					})
				}
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Spool is empty.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Stream", "File", "Bytes", "Age"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&stream, "stream", "", "Limit output to one stream folder")
	return cmd
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
