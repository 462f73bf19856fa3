package app

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm/schema"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/migration"
)

func init() { //nolint: gochecknoinits
	describeFields.register(describeCmd.Flags())
	describeCmd.Flags().BoolVar(&describeModels, "models", false, "Describe the fields of all models instead")

	rootCmd.AddCommand(describeCmd)
}

var (
	describeFields fieldFlags
	describeModels bool

	describeCmd = &cobra.Command{
		Use:   "describe",
		Short: "Print the deconstruction of a field as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out any

			if describeModels {
				d, err := migration.Deconstructions(schema.NamingStrategy{}, models.WithShortUUIDFields()...)
				if err != nil {
					return err //nolint:wrapcheck
				}

				out = d
			} else {
				f, err := describeFields.build(cmd.Flags())
				if err != nil {
					return err
				}

				out = f.Deconstruct()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return errors.Wrap(enc.Encode(out), "failed to encode deconstruction")
		},
	}
)
