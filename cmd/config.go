package cmd

import (
	"fmt"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings",
	}

	cmd.AddCommand(newConfigShowCmd(app))

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.settingsStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asTOML {
				data, err := toml.Marshal(store.Values())
				if err != nil {
					return fmt.Errorf("encode settings: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			source := store.ConfigFile()
			if source == "" {
				source = "defaults"
			}
			if _, err := fmt.Fprintf(out, "source: %s\n", source); err != nil {
				return err
			}

			flat := map[string]any{}
			flatten("", store.Values(), flat)
			keys := make([]string, 0, len(flat))
			for key := range flat {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				if _, err := fmt.Fprintf(out, "%s = %v\n", key, flat[key]); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as a config.toml document")

	return cmd
}

func flatten(prefix string, values map[string]any, into map[string]any) {
	for key, value := range values {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(key, nested, into)
			continue
		}
		into[key] = value
	}
}
