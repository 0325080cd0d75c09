package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goliatone/go-krishi-portal/portal"
	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/spf13/cobra"
)

func (c *cli) submitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Log in and submit one of the portal forms",
	}
	cmd.AddCommand(
		c.submitAdvisoryCmd(),
		c.submitPriceCmd(),
		c.submitSchemeCmd(),
		c.submitSoilCmd(),
		c.submitQuestionCmd(),
		c.submitAnswerCmd(),
		c.submitRoleCmd(),
	)
	return cmd
}

// loggedIn logs in as the configured principal and hands back the App.
func (c *cli) loggedIn(cmd *cobra.Command) (*portal.App, error) {
	app := c.container.App()
	if err := app.Login(cmd.Context()); err != nil {
		return nil, err
	}
	return app, nil
}

func optionalID(id uint64) remote.Option[uint64] {
	if id == 0 {
		return remote.None[uint64]()
	}
	return remote.Some(id)
}

func printID(cmd *cobra.Command, kind string, id uint64) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d saved\n", kind, id)
}

func (c *cli) submitAdvisoryCmd() *cobra.Command {
	var (
		id                     uint64
		crop, guidance, season string
	)
	cmd := &cobra.Command{
		Use:   "advisory",
		Short: "Add a crop advisory, or replace one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.loggedIn(cmd)
			if err != nil {
				return err
			}
			got, err := app.PublishAdvisory(cmd.Context(), optionalID(id), crop, guidance, season)
			if err != nil {
				return err
			}
			printID(cmd, "advisory", got)
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&id, "id", 0, "advisory to replace")
	f.StringVar(&crop, "crop", "", "crop name")
	f.StringVar(&guidance, "guidance", "", "guidance text")
	f.StringVar(&season, "season", "", "season, e.g. Kharif or Rabi")
	return cmd
}

func (c *cli) submitPriceCmd() *cobra.Command {
	var (
		id, price      uint64
		crop, location string
	)
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Add a mandi price, or replace one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.loggedIn(cmd)
			if err != nil {
				return err
			}
			got, err := app.PublishPrice(cmd.Context(), optionalID(id), crop, price, location)
			if err != nil {
				return err
			}
			printID(cmd, "price", got)
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&id, "id", 0, "price to replace")
	f.StringVar(&crop, "crop", "", "crop name")
	f.Uint64Var(&price, "price", 0, "price per quintal in rupees")
	f.StringVar(&location, "location", "", "mandi location")
	return cmd
}

func (c *cli) submitSchemeCmd() *cobra.Command {
	var (
		id                             uint64
		name, description, eligibility string
	)
	cmd := &cobra.Command{
		Use:   "scheme",
		Short: "Add a government scheme, or replace one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.loggedIn(cmd)
			if err != nil {
				return err
			}
			got, err := app.PublishScheme(cmd.Context(), optionalID(id), name, description, eligibility)
			if err != nil {
				return err
			}
			printID(cmd, "scheme", got)
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&id, "id", 0, "scheme to replace")
	f.StringVar(&name, "name", "", "scheme name")
	f.StringVar(&description, "description", "", "what the scheme offers")
	f.StringVar(&eligibility, "eligibility", "", "who may apply")
	return cmd
}

func (c *cli) submitSoilCmd() *cobra.Command {
	var (
		ph                         float64
		nutrients, recommendations string
	)
	cmd := &cobra.Command{
		Use:   "soil",
		Short: "Record a soil report for the caller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.loggedIn(cmd)
			if err != nil {
				return err
			}
			got, err := app.AddSoilReport(cmd.Context(), ph, nutrients, recommendations)
			if err != nil {
				return err
			}
			printID(cmd, "soil report", got)
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&ph, "ph", 7, "soil pH")
	f.StringVar(&nutrients, "nutrients", "", "nutrient levels")
	f.StringVar(&recommendations, "recommendations", "", "recommended treatment")
	return cmd
}

func (c *cli) submitQuestionCmd() *cobra.Command {
	var image string
	cmd := &cobra.Command{
		Use:   "question <text>",
		Short: "Ask the experts a question, optionally with a jpeg or png image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attachment := remote.None[string]()
			if image != "" {
				uri, err := imageDataURL(image)
				if err != nil {
					return err
				}
				attachment = remote.Some(uri)
			}
			app, err := c.loggedIn(cmd)
			if err != nil {
				return err
			}
			got, err := app.AskExpert(cmd.Context(), args[0], attachment)
			if err != nil {
				return err
			}
			printID(cmd, "query", got)
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "path to an image to attach")
	return cmd
}

func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := "image/" + strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (c *cli) submitAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <query-id> <text>",
		Short: "Answer a pending expert query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid query id %q: %w", args[0], err)
			}
			app, err := c.loggedIn(cmd)
			if err != nil {
				return err
			}
			if err := app.RespondToQuery(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			printID(cmd, "response to query", id)
			return nil
		},
	}
}

func (c *cli) submitRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role <principal> <admin|user|guest>",
		Short: "Assign a role to a principal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.loggedIn(cmd)
			if err != nil {
				return err
			}
			if err := app.AssignRole(cmd.Context(), remote.Principal(args[0]), remote.Role(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
			return nil
		},
	}
}
