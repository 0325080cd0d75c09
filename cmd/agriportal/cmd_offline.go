package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *cli) offlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offline",
		Short: "Inspect the offline store",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List mirrored resources and when they were written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := c.container.Offline()

			resources := store.Resources(ctx)
			if len(resources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "offline store is empty")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RESOURCE\tUPDATED")
			for _, r := range resources {
				updated := "-"
				if ts, ok := store.Timestamp(ctx, r); ok {
					updated = ts.Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%s\t%s\n", r, updated)
			}
			return tw.Flush()
		},
	})
	return cmd
}
