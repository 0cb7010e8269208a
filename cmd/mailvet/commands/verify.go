package commands

import (
	"context"
	"fmt"

	"github.com/mrled/mailvet/internal/config"
	"github.com/mrled/mailvet/internal/forms"
	"github.com/mrled/mailvet/internal/repository"
	"github.com/mrled/mailvet/internal/service/dnscheck"
	"github.com/mrled/mailvet/internal/service/verifier"
	"github.com/mrled/mailvet/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	verifyStoreFlags StoreFlags
	verifyAPIKey     string
	verifyDNSServer  string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <address>",
	Short: "Verify an email address",
	Long: `Verify an email address, using cached results when fresh and the
remote verification service otherwise.

Without any persistence flag the cache lives only for this invocation, so
every run costs a remote call. Point --file, --redis-addr, or
--dynamodb-table at a store shared with the server to reuse its cache.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]
		ctx := context.Background()

		settings, err := config.Load()
		if err != nil {
			return err
		}
		if verifyAPIKey != "" {
			settings.APIKey = verifyAPIKey
		}
		if verifyDNSServer != "" {
			settings.DNSServer = verifyDNSServer
		}

		stores, err := repository.NewStores(ctx, repository.Config{
			FilePath:       verifyStoreFlags.FilePath,
			DynamoTable:    verifyStoreFlags.DynamoTable,
			DynamoEndpoint: verifyStoreFlags.DynamoEndpoint,
			RedisAddr:      verifyStoreFlags.RedisAddr,
			RedisPassword:  verifyStoreFlags.RedisPassword,
		})
		if err != nil {
			return err
		}

		var dns *dnscheck.Service
		if settings.DNSServer != "" {
			dns = dnscheck.NewServiceWithResolver(dnscheck.NewCustomResolver(settings.DNSServer))
		} else {
			dns = dnscheck.NewService()
		}

		uc := usecase.NewVerifyUseCase(
			stores.Domains,
			stores.Emails,
			verifier.NewClient(),
			dns,
			usecase.Config{
				APIKey:          settings.APIKey,
				FreshnessWindow: settings.FreshnessWindow,
			},
		)

		result := uc.Verify(ctx, address)

		fmt.Printf("Address: %s\n", address)
		fmt.Printf("Status: %s\n", result.Status)
		if result.SuggestedAddress != "" {
			fmt.Printf("Did you mean: %s\n", result.SuggestedAddress)
		}
		if message, ok := forms.Advise(result); ok {
			fmt.Printf("Message: %s\n", message.Text)
		}

		return nil
	},
}

func init() {
	addStoreFlags(verifyCmd, &verifyStoreFlags)
	verifyCmd.Flags().StringVarP(&verifyAPIKey, "api-key", "k", "", "API key for the verification service (overrides MAILVET_API_KEY)")
	verifyCmd.Flags().StringVar(&verifyDNSServer, "dns-server", "", "DNS server host:port for the domain existence check")
}
