package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goliatone/go-krishi-portal/query"
	"github.com/spf13/cobra"
)

// lister reads one list resource and writes it as tab separated rows.
type lister func(ctx context.Context, q *query.Orchestrator, w io.Writer) (offline bool, cachedAt time.Time, err error)

var listers = map[string]lister{
	"advisories": func(ctx context.Context, q *query.Orchestrator, w io.Writer) (bool, time.Time, error) {
		v, err := q.CropAdvisoriesView(ctx)
		fmt.Fprintln(w, "ID\tCROP\tSEASON\tGUIDANCE")
		for _, a := range v.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.Crop, a.Season, a.Guidance)
		}
		return v.Offline, v.CachedAt, err
	},
	"prices": func(ctx context.Context, q *query.Orchestrator, w io.Writer) (bool, time.Time, error) {
		v, err := q.MandiPricesView(ctx)
		fmt.Fprintln(w, "ID\tCROP\tPRICE/QTL\tMANDI")
		for _, p := range v.Items {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", p.ID, p.Crop, p.Price, p.Location)
		}
		return v.Offline, v.CachedAt, err
	},
	"schemes": func(ctx context.Context, q *query.Orchestrator, w io.Writer) (bool, time.Time, error) {
		v, err := q.GovernmentSchemesView(ctx)
		fmt.Fprintln(w, "ID\tNAME\tELIGIBILITY")
		for _, s := range v.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Name, s.Eligibility)
		}
		return v.Offline, v.CachedAt, err
	},
	"soil": func(ctx context.Context, q *query.Orchestrator, w io.Writer) (bool, time.Time, error) {
		v, err := q.SoilReportsView(ctx)
		fmt.Fprintln(w, "ID\tPH\tNUTRIENTS\tRECOMMENDATIONS")
		for _, r := range v.Items {
			fmt.Fprintf(w, "%d\t%.1f\t%s\t%s\n", r.ID, r.PH, r.Nutrients, r.Recommendations)
		}
		return v.Offline, v.CachedAt, err
	},
	"queries": func(ctx context.Context, q *query.Orchestrator, w io.Writer) (bool, time.Time, error) {
		v, err := q.ExpertQueriesView(ctx)
		fmt.Fprintln(w, "ID\tSTATUS\tQUESTION\tRESPONSE")
		for _, eq := range v.Items {
			status := "pending"
			if !eq.Pending() {
				status = "answered"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", eq.ID, status, eq.Question, eq.Response.OrElse("-"))
		}
		return v.Offline, v.CachedAt, err
	},
}

func (c *cli) listCmd() *cobra.Command {
	var login bool

	cmd := &cobra.Command{
		Use:       "list <advisories|prices|schemes|soil|queries>",
		Short:     "List a resource, falling back to the offline copy",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"advisories", "prices", "schemes", "soil", "queries"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if login {
				if err := c.container.App().Login(ctx); err != nil {
					return err
				}
			} else {
				c.start(cmd)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			offline, cachedAt, err := listers[args[0]](ctx, c.container.Queries(), tw)
			if err != nil {
				return err
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if offline {
				fmt.Fprintf(out, "offline copy from %s\n", cachedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&login, "login", false, "log in as the configured principal first")
	return cmd
}
