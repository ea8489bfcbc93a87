package cmd

import (
	"time"

	"github.com/bnema/salvage-tracker/internal/adapters/host/scripted"
	"github.com/bnema/salvage-tracker/internal/adapters/replay"
	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/spf13/cobra"
)

func newReplayCmd(app *app) *cobra.Command {
	var asJSON bool
	var atEnd bool

	cmd := &cobra.Command{
		Use:   "replay <scenario.toml|scenario.yaml|events.jsonl>",
		Short: "Replay a scripted session and print the panels at each render step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.settingsStore()
			if err != nil {
				return err
			}
			logger, err := app.logger(cmd.ErrOrStderr(), store)
			if err != nil {
				return err
			}

			scenario, err := replay.Load(args[0])
			if err != nil {
				return err
			}

			client := scripted.NewClient()
			clock := scripted.NewClock(time.Time{})
			tracker := application.NewTracker(client, store, clock, logger)
			defer tracker.Close()

			rendered := 0
			render := func(status application.Status) error {
				if atEnd {
					return nil
				}
				rendered++
				return writeStatusOutput(cmd, app, status, store.Settings(), scenario.Name, asJSON)
			}

			logger.Debug("replaying scenario", "name", scenario.Name, "steps", len(scenario.Steps), "session", tracker.SessionID())
			if err := replay.NewPlayer(tracker, client).Play(cmd.Context(), scenario, clock, render); err != nil {
				return err
			}

			if rendered > 0 {
				return nil
			}

			return writeStatusOutput(cmd, app, tracker.Snapshot(), store.Settings(), scenario.Name, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status snapshots as JSON")
	cmd.Flags().BoolVar(&atEnd, "at-end", false, "ignore render steps and print once after the last step")

	return cmd
}
