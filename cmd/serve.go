package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	httpHdlr "ragbot/handler/http"
	"ragbot/src/infrastructure/integrations/telegram"
	"ragbot/src/infrastructure/log"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assistant as a webhook HTTP server",
	Long: `The serve command starts an HTTP server exposing the Telegram webhook
endpoint and the JSON chat API. The corpus and index are loaded before
the server accepts traffic.`,
	Run: RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer(cmd *cobra.Command, args []string) {
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

	// Telegram is optional for serve: without a token only the JSON
	// chat API is exposed.
	var bot *telegram.Bot
	token := viper.GetString("telegram.token")
	if token != "" {
		bot, err = telegram.NewBot(token, svc)
		if err != nil {
			log.Error(err, "Failed to initialize telegram bot")
			os.Exit(1)
		}
	} else {
		log.Info("no telegram token configured, webhook route disabled")
	}

	handler := httpHdlr.NewHandler(svc, bot, token)

	// Setup gin router
	r := gin.Default()
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "Failed to start server")
			return
		}
	}()
	log.Info("server listening", "port", viper.GetString("server.port"))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("server.shutdown_timeout"))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}
	log.Info("Server exited")
}
