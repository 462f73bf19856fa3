package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/daemon"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/controller/apikey"
)

func init() { //nolint: gochecknoinits
	keyIssueCmd.Flags().StringVar(&keyUserID, "user", "", "Id of the owning user")
	keyIssueCmd.Flags().StringVar(&keyName, "name", "", "Label of the key")
	_ = keyIssueCmd.MarkFlagRequired("user")
	_ = keyIssueCmd.MarkFlagRequired("name")

	keyCmd.AddCommand(keyIssueCmd)
	rootCmd.AddCommand(keyCmd)
}

var (
	keyUserID string
	keyName   string

	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Manage api keys",
	}

	keyIssueCmd = &cobra.Command{
		Use:   "issue",
		Short: "Issue an api key and print it as <id>:<secret>",
		Long: `Issue an api key for a user. The secret is printed once and only its
hash is stored. Send it as X-API-Key header to the generate endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := daemon.Prepare(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			key, secret, err := apikey.Issue(conn, keyUserID, keyName)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", key.ID, secret)

			return err //nolint:wrapcheck
		},
	}
)
