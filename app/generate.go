package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrInvalidCount is returned for a generate count below one.
var ErrInvalidCount = errors.New("count must be at least 1")

func init() { //nolint: gochecknoinits
	generateFields.register(generateCmd.Flags())
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "Number of values")

	rootCmd.AddCommand(generateCmd)
}

var (
	generateFields fieldFlags
	generateCount  int

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Print freshly generated field values, one per line",
		Example: `  shortuuid-field generate --prefix usr_ --length 10
  shortuuid-field generate --alphabet 01 --length 8 -n 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if generateCount < 1 {
				return ErrInvalidCount
			}

			f, err := generateFields.build(cmd.Flags())
			if err != nil {
				return err
			}

			for range generateCount {
				if _, err = fmt.Fprintln(cmd.OutOrStdout(), f.Default()); err != nil {
					return errors.Wrap(err, "failed to write value")
				}
			}

			return nil
		},
	}
)
