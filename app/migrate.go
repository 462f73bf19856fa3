package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/migration"
)

func init() { //nolint: gochecknoinits
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Only print the plan")

	rootCmd.AddCommand(migrateCmd)
}

var (
	migrateDryRun bool

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate tables and record changed field configurations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := db.Open(cfg.DB)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err = db.Migrate(conn); err != nil {
				return err //nolint:wrapcheck
			}

			changes, err := migration.Plan(conn, conn.NamingStrategy, models.WithShortUUIDFields()...)
			if err != nil {
				return err //nolint:wrapcheck
			}

			out := cmd.OutOrStdout()

			if len(changes) == 0 {
				_, _ = fmt.Fprintln(out, "no changes")

				return nil
			}

			for _, c := range changes {
				line := fmt.Sprintf("%-8s %s", c.Kind, c.Name)
				if len(c.Keys) > 0 {
					line += " (" + strings.Join(c.Keys, ", ") + ")"
				}

				_, _ = fmt.Fprintln(out, line)
			}

			if migrateDryRun {
				return nil
			}

			return migration.Apply(conn, changes) //nolint:wrapcheck
		},
	}
)
