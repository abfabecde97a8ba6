package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ragbot/src/infrastructure/log"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant from the console",
	Long: `The chat command runs the full retrieval pipeline interactively. Each
question prints the retrieved passages followed by the model's answer.
Type "exit" to quit.`,
	Run: RunChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func RunChat(cmd *cobra.Command, args []string) {
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

	const conversationID = 0
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("question> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "exit") {
			fmt.Println("bye")
			break
		}

		passages, err := retriever.Retrieve(ctx, query, viper.GetInt("rag.top_k"))
		if err != nil {
			log.Error(err, "retrieval failed")
		}
		for _, p := range passages {
			fmt.Printf("- %s, page %d (distance %.4f): %s\n", p.DocID, p.PageNum, p.Distance, p.Text)
		}

		fmt.Println()
		fmt.Println(svc.HandleTurn(ctx, conversationID, query))
		fmt.Println()
	}
}
