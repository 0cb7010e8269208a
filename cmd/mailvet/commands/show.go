package commands

import (
	"context"
	"fmt"

	"github.com/mrled/mailvet/internal/model"
	"github.com/mrled/mailvet/internal/presenter"
	"github.com/mrled/mailvet/internal/repository"
	"github.com/spf13/cobra"
)

var showStoreFlags StoreFlags

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cached verification records",
	Long:  `List all cached domain and email records from the configured store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		stores, err := repository.NewStores(ctx, repository.Config{
			FilePath:       showStoreFlags.FilePath,
			DynamoTable:    showStoreFlags.DynamoTable,
			DynamoEndpoint: showStoreFlags.DynamoEndpoint,
			RedisAddr:      showStoreFlags.RedisAddr,
			RedisPassword:  showStoreFlags.RedisPassword,
		})
		if err != nil {
			return err
		}

		domains, err := stores.Domains.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list domain records: %w", err)
		}

		fmt.Printf("Domain records (%d):\n", len(domains))
		for _, record := range domains {
			flag := ""
			if record.CatchAll {
				flag = " catch-all"
			}
			if record.SuggestedDomain != "" {
				flag += fmt.Sprintf(" suggests=%s", record.SuggestedDomain)
			}
			fmt.Printf("  %s hits=%d refreshed %s%s\n",
				record.Domain, record.HitCount,
				presenter.FormatTimeSince(record.LastRefreshed), flag)
		}

		emails, err := stores.Emails.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list email records: %w", err)
		}

		fmt.Printf("Email records (%d):\n", len(emails))
		for _, record := range emails {
			fmt.Printf("  %s status=%s refreshed %s\n",
				record.Address,
				model.StatusFromCode(record.Outcome.Code),
				presenter.FormatTimeSince(record.LastRefreshed))
		}

		return nil
	},
}

func init() {
	addStoreFlags(showCmd, &showStoreFlags)
}
