package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ragbot/src/core/corpus"
	"ragbot/src/core/vectorindex"
	"ragbot/src/infrastructure/log"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print index and corpus statistics with sample entries",
	Run:   RunInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func RunInspect(cmd *cobra.Command, args []string) {
	store, err := corpus.Load(chunkPath())
	if err != nil {
		log.Error(err, "Failed to load chunk file")
		os.Exit(1)
	}
	index, err := vectorindex.Load(indexPath())
	if err != nil {
		log.Error(err, "Failed to load index file")
		os.Exit(1)
	}

	fmt.Printf("chunks:    %d\n", store.Len())
	fmt.Printf("vectors:   %d\n", index.Len())
	fmt.Printf("dimension: %d\n", index.Dimension())
	if store.Len() != index.Len() {
		fmt.Println("WARNING: chunk and vector counts differ, the files were not built together")
	}

	samples := 5
	if samples > index.Len() {
		samples = index.Len()
	}
	for i := 0; i < samples; i++ {
		chunk, err := store.Get(i)
		if err != nil {
			break
		}
		vector, err := index.Reconstruct(i)
		if err != nil {
			break
		}
		head := vector
		if len(head) > 5 {
			head = head[:5]
		}
		fmt.Printf("\n--- chunk %d (%s, page %d) ---\n%s\nvector head: %v\n",
			chunk.ChunkID, chunk.DocID, chunk.PageNum, chunk.Text, head)
	}
}
