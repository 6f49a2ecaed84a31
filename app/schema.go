package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/deltagreen-vtt/dgsettings/internal/deltagreen"
	"github.com/deltagreen-vtt/dgsettings/internal/i18n"
	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

func init() { //nolint: gochecknoinits
	schemaCmd.Flags().StringVar(&schemaFormat, "format", "toml", "Output format: toml or json")
	schemaCmd.Flags().StringVar(&schemaLocale, "locale", "en", "Language of names and hints")

	rootCmd.AddCommand(schemaCmd)
}

var (
	schemaFormat string
	schemaLocale string

	schemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the declared settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema := deltagreen.Schema()
			if err := schema.Validate(); err != nil {
				return err //nolint:wrapcheck
			}

			catalog, err := i18n.New(schemaLocale)
			if err != nil {
				return err //nolint:wrapcheck
			}

			out, err := dumpSchema(settings.Describe(schema, catalog), schemaFormat)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err //nolint:wrapcheck
		},
	}
)

func dumpSchema(info settings.SchemaInfo, format string) (string, error) {
	var buffer bytes.Buffer

	switch format {
	case "toml":
		if err := toml.NewEncoder(&buffer).Encode(info); err != nil {
			return "", err //nolint:wrapcheck
		}
	case "json":
		j := json.NewEncoder(&buffer)
		j.SetIndent("", "  ")

		if err := j.Encode(info); err != nil {
			return "", err //nolint:wrapcheck
		}
	default:
		return "", fmt.Errorf("unknown format %q", format) //nolint:err113
	}

	return buffer.String(), nil
}
