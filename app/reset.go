package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/deltagreen-vtt/dgsettings/internal/deltagreen"
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

func init() { //nolint: gochecknoinits
	resetCmd.Flags().StringVar(&resetClient, "client", "", "User whose client scoped value is reset")

	rootCmd.AddCommand(resetCmd)
}

var resetClient string

var resetCmd = &cobra.Command{
	Use:   "reset <setting>",
	Short: "Delete a stored value so the setting falls back to its default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := deltagreen.Schema()

		def, ok := findDefinition(schema, args[0])
		if !ok {
			return errors.Wrapf(settings.ErrUnknownSetting, "%q", args[0])
		}

		p := settings.Partition{Scope: def.EffectiveScope()}
		if p.Scope == settings.ScopeClient {
			if resetClient == "" {
				return errors.Wrapf(settings.ErrNoClient, "%s: use --client", def.ID)
			}

			p.Client = resetClient
		}

		backend, closer, err := openSQLStore()
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx := cmd.Context()

		found, err := backend.Reset(ctx, p, schema.Key(def.ID))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !found {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: nothing stored\n", p.StorageKey(schema.Key(def.ID)))
			return err //nolint:wrapcheck
		}

		// world values are seeded again right away
		store := settings.NewStore(backend)
		if err = settings.RegisterAll(ctx, store, schema, settings.KeyLocalizer); err != nil {
			return err //nolint:wrapcheck
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: reset to %v\n", p.StorageKey(schema.Key(def.ID)), def.DefaultValue())

		return err //nolint:wrapcheck
	},
}

func findDefinition(schema *settings.Schema, id string) (settings.Definition, bool) {
	for _, ns := range schema.Namespaces() {
		if d, ok := schema.Lookup(ns, id); ok {
			return d, true
		}
	}

	return settings.Definition{}, false
}
