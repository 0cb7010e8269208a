package commands

import (
	"github.com/spf13/cobra"
)

// StoreFlags holds flags related to persistence and data storage options
type StoreFlags struct {
	FilePath       string
	DynamoTable    string
	DynamoEndpoint string
	RedisAddr      string
	RedisPassword  string
}

// addStoreFlags adds common persistence-related flags to a command
func addStoreFlags(cmd *cobra.Command, flags *StoreFlags) {
	cmd.Flags().StringVarP(&flags.FilePath, "file", "f", "", "Path to JSON file for persistence")
	cmd.Flags().StringVarP(&flags.DynamoTable, "dynamodb-table", "t", "", "DynamoDB table name for persistence")
	cmd.Flags().StringVarP(&flags.DynamoEndpoint, "dynamodb-endpoint", "e", "", "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
	cmd.Flags().StringVar(&flags.RedisAddr, "redis-addr", "", "Redis host:port for persistence")
	cmd.Flags().StringVar(&flags.RedisPassword, "redis-password", "", "Redis auth password")
}
