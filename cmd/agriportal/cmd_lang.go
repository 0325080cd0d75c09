package main

import (
	"fmt"

	"github.com/goliatone/go-krishi-portal/prefs"
	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/spf13/cobra"
)

func (c *cli) langCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show or change the UI language",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored UI language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.container.Prefs().Language(cmd.Context()))
			return nil
		},
	})

	var login bool
	set := &cobra.Command{
		Use:       "set <en|hi>",
		Short:     "Change the UI language",
		Long:      "Stores the language locally. With --login the caller's profile is updated too.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(prefs.English), string(prefs.Hindi)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app := c.container.App()
			if login {
				if err := app.Login(ctx); err != nil {
					return err
				}
			} else {
				c.start(cmd)
			}

			if err := app.SetLanguage(ctx, prefs.ParseLanguage(args[0])); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "language: %s\n", app.Language(ctx))
			if p, ok := app.Profile().Get(); ok {
				fmt.Fprintf(out, "profile: %s\n", profileLine(p))
			}
			return nil
		},
	}
	set.Flags().BoolVar(&login, "login", false, "log in as the configured principal first")
	cmd.AddCommand(set)
	return cmd
}

// profileLine renders the caller profile for status output.
func profileLine(p remote.FarmerProfile) string {
	return fmt.Sprintf("%s (%s, %.1f acres, %s)", p.Name, p.Location, p.LandSize, p.PreferredLanguage)
}
