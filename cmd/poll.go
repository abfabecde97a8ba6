package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ragbot/src/infrastructure/integrations/telegram"
	"ragbot/src/infrastructure/log"
)

// pollCmd represents the poll command
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run the assistant over Telegram long polling",
	Long: `The poll command runs the Telegram bot via long polling instead of a
webhook, so no inbound HTTP endpoint is needed.`,
	Run: RunPoller,
}

func init() {
	rootCmd.AddCommand(pollCmd)
}

func RunPoller(cmd *cobra.Command, args []string) {
	token := viper.GetString("telegram.token")
	if token == "" {
		log.Error(errors.New("TELEGRAM_BOT_TOKEN is not set"), "poll mode needs a telegram token")
		os.Exit(1)
	}

	retriever, err := newRetriever()
	if err != nil {
		log.Error(err, "Failed to initialize retrieval")
		os.Exit(1)
	}
	svc, err := newAssistant(retriever)
	if err != nil {
		log.Error(err, "Failed to initialize assistant")
		os.Exit(1)
	}
	bot, err := telegram.NewBot(token, svc)
	if err != nil {
		log.Error(err, "Failed to initialize telegram bot")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("polling for updates")
	bot.Poll(ctx)
	log.Info("Poller exited")
}
