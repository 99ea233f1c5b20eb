package cmd

import (
	"encoding/json"
	"fmt"

	slotsrender "github.com/bnema/saveslots/internal/adapters/render/slots"
	"github.com/bnema/saveslots/internal/application"
	"github.com/spf13/cobra"
)

func newListCmd(app *app) *cobra.Command {
	var (
		asJSON  bool
		showIDs bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the slot menu as the game builds it",
		Long:  "list rebuilds the preserved sessions menu, newest first. If the profile has no usable session the newest slot becomes the profile session, exactly as when the game opens the menu.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := slots.Projector.Rebuild(cmd.Context()); err != nil {
				return fmt.Errorf("build slot menu: %w", err)
			}

			return writeSlotsOutput(cmd, app, slots.Projector.Slots(), asJSON, showIDs)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print slots as JSON")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show session ids next to labels")

	return cmd
}

func newLatestCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Print the most recently saved slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			record, ok := slots.Registry.Latest()
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No preserved sessions.")
				return err
			}

			label := application.NewLabeler(app.deps.Loadouts, app.deps.Location).Label(cmd.Context(), record)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", record.ID(), label)
			return err
		},
	}
}

func newSelectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <session-id>",
		Short: "Make a slot the profile's preserved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := slots.Projector.Rebuild(cmd.Context()); err != nil {
				return fmt.Errorf("build slot menu: %w", err)
			}

			if err := slots.Projector.Select(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Selected %s\n", slots.Projector.DropdownLabel())
			return err
		},
	}
}

func writeSlotsOutput(cmd *cobra.Command, app *app, slots []application.Slot, asJSON bool, showIDs bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(slots)
	}

	rendered, err := app.renderer(slots, slotsrender.RenderOptions{
		Now:     app.now(),
		ShowIDs: showIDs,
	})
	if err != nil {
		return fmt.Errorf("render slots: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
