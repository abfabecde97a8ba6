package cmd

import (
	"context"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ragbot/src/core/corpus"
	"ragbot/src/core/vectorindex"
	"ragbot/src/infrastructure/log"
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the chunk file and build the vector index",
	Long: `The index command embeds every chunk through the configured embedding
model and writes the resulting flat L2 index next to the chunk file.
The chunk file and index file must always be rebuilt together.`,
	Run: RunIndexBuild,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func RunIndexBuild(cmd *cobra.Command, args []string) {
	store, err := corpus.Load(chunkPath())
	if err != nil {
		log.Error(err, "Failed to load chunk file")
		os.Exit(1)
	}
	embedder, err := newEmbedder()
	if err != nil {
		log.Error(err, "Failed to initialize embedder")
		os.Exit(1)
	}

	texts := store.Texts()
	batchSize := viper.GetInt("ollama.batch_size")
	if batchSize <= 0 {
		batchSize = 32
	}

	ctx := context.Background()
	bar := progressbar.Default(int64(len(texts)), "embedding chunks")
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := embedder.Embed(ctx, texts[start:end])
		if err != nil {
			log.Error(err, "Embedding failed", "batch_start", start)
			os.Exit(1)
		}
		vectors = append(vectors, batch...)
		bar.Add(end - start)
	}

	index, err := vectorindex.Build(vectors)
	if err != nil {
		log.Error(err, "Failed to build index")
		os.Exit(1)
	}
	if err := index.Save(indexPath()); err != nil {
		log.Error(err, "Failed to write index file")
		os.Exit(1)
	}
	log.Info("wrote index file",
		"path", indexPath(),
		"vectors", index.Len(),
		"dimension", index.Dimension())
}
