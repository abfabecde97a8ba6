package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ragbot/src/infrastructure/log"
)

var rootCmd = &cobra.Command{
	Use:   "ragbot",
	Short: "Retrieval-augmented Telegram support assistant",
	Long: `ragbot answers user questions from an indexed document corpus.

Offline, ingest converts PDFs into chunk records and index embeds them
into a searchable vector index. Online, serve (webhook) or poll
(long polling) runs the Telegram bot; chat talks to the same pipeline
from the console.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Secrets come from the environment; .env is a local convenience.
		_ = godotenv.Load()
		settingDefaultConfig()
		return log.Init(viper.GetBool("log.development"))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
