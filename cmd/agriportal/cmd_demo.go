package main

import (
	"fmt"
	"io"

	"github.com/goliatone/go-krishi-portal/portal"
	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/goliatone/go-krishi-portal/session"
	"github.com/spf13/cobra"
)

func (c *cli) demoCmd() *cobra.Command {
	var profile remote.UserProfile

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through login, profile setup, the admin view and logout",
		Long: `Logs in as the configured principal, creates a profile when none exists,
requests the admin view and logs out, printing the routed view after each step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(cmd, profile)
		},
	}

	f := cmd.Flags()
	f.StringVar(&profile.Name, "name", "Ramesh Patil", "profile name used during setup")
	f.StringVar(&profile.Location, "location", "Nashik", "profile location used during setup")
	f.Float64Var(&profile.LandSize, "land", 2.5, "land size in acres")
	f.StringVar(&profile.PreferredLanguage, "lang", "hi", "preferred language saved with the profile")
	return cmd
}

func (c *cli) runDemo(cmd *cobra.Command, profile remote.UserProfile) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	app := c.container.App()

	c.start(cmd)
	printStep(out, "start", app)

	if err := app.Login(ctx); err != nil {
		return err
	}
	printStep(out, "login", app)

	if app.Snapshot().Profile == session.ProfileNeedsSetup {
		if err := app.CompleteProfile(ctx, profile); err != nil {
			return err
		}
		printStep(out, "profile", app)
	}
	fmt.Fprintf(out, "language: %s\n", app.Language(ctx))

	app.RequestAdminView(true)
	printStep(out, "admin", app)

	advisories, err := app.Queries().CropAdvisoriesView(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "advisories: %d offline=%t\n", len(advisories.Items), advisories.Offline)

	if err := app.Logout(ctx); err != nil {
		return err
	}
	printStep(out, "logout", app)
	return nil
}

func printStep(w io.Writer, step string, app *portal.App) {
	d := app.View()
	fmt.Fprintf(w, "%-8s view=%s profile=%s setup=%t admin-toggle=%t\n",
		step, d.View, app.Snapshot().Profile, d.ProfileSetup, d.AdminToggle)
}
