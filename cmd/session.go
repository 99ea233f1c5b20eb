package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/spf13/cobra"
)

func newStoreCmd(app *app) *cobra.Command {
	var (
		sessionID string
		ship      string
		mutators  []string
	)

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Preserve a session the way the game does when leaving a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			id := strings.TrimSpace(sessionID)
			if id == "" {
				id = app.newID()
			}
			session := &domain.Session{GameSessionID: id, Ship: ship, Mutators: mutators}

			slots.Saver.BeforeStore(session)
			if err := app.deps.Profile.SetPreservedSession(cmd.Context(), session); err != nil {
				return fmt.Errorf("store profile preserved session: %w", err)
			}
			if err := slots.Saver.WriteBack(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%d slots)\n", id, slots.Registry.Len())
			return err
		},
	}

	cmd.Flags().StringVar(&sessionID, "id", "", "Session id (generated when empty)")
	cmd.Flags().StringVar(&ship, "ship", "", "Ship loadout GUID")
	cmd.Flags().StringArrayVar(&mutators, "mutator", nil, "Mutator id (repeatable)")

	return cmd
}

func newClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the profile's preserved session and drop its slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			current, err := app.deps.Profile.PreservedSession(cmd.Context())
			if err != nil {
				return fmt.Errorf("load profile preserved session: %w", err)
			}
			if !current.Valid() {
				return errors.New("profile has no preserved session to clear")
			}

			slots.Saver.BeforeClear(cmd.Context())
			if err := app.deps.Profile.SetPreservedSession(cmd.Context(), nil); err != nil {
				return fmt.Errorf("clear profile preserved session: %w", err)
			}
			if err := slots.Saver.WriteBack(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s (%d slots left)\n", current.GameSessionID, slots.Registry.Len())
			return err
		},
	}
}

func newSyncCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Load preserved sessions and write them back to every target",
		Long:  "sync runs the login initialization, repairing the registry from the profile session if needed, then writes the result to both the remote and the local target.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			result, err := slots.Coordinator.Wait(cmd.Context())
			if err != nil {
				return err
			}

			if err := slots.Saver.WriteBack(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Synced %d slots (source: %s)\n", result.Slots, result.Source)
			return err
		},
	}
}

func newForgetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <session-id>",
		Short: "Drop a slot other than the profile's preserved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if !slots.Registry.Contains(args[0]) {
				return fmt.Errorf("forget slot %q: %w", args[0], domain.ErrIntegrity)
			}

			if err := slots.Saver.Forget(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s (%d slots left)\n", args[0], slots.Registry.Len())
			return err
		},
	}
}
