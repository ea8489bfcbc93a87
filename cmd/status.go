package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/salvage-tracker/internal/adapters/render/status"
	"github.com/bnema/salvage-tracker/internal/application"
	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/spf13/cobra"
)

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, settings domain.Settings, title string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
		Settings: settings,
		Title:    title,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
