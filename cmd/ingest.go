package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ragbot/src/core/corpus"
	"ragbot/src/core/ingest"
	"ragbot/src/infrastructure/log"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Convert source PDFs into the chunk file",
	Long: `The ingest command reads every PDF under the docs directory, splits
each page into sentence-aligned chunks of roughly 400 characters, and
writes them to the chunk file the index and serve commands consume.`,
	Run: RunIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func RunIngest(cmd *cobra.Command, args []string) {
	chunks, err := ingest.Directory(viper.GetString("rag.docs_dir"), ingest.Options{
		ChunkSize:    viper.GetInt("rag.chunk_size"),
		MinChunkSize: viper.GetInt("rag.min_chunk_size"),
	})
	if err != nil {
		log.Error(err, "Ingestion failed")
		os.Exit(1)
	}

	store, err := corpus.NewStore(chunks)
	if err != nil {
		log.Error(err, "Ingestion produced a misaligned corpus")
		os.Exit(1)
	}

	if err := os.MkdirAll(viper.GetString("rag.data_dir"), 0o755); err != nil {
		log.Error(err, "Failed to create data directory")
		os.Exit(1)
	}
	if err := store.Save(chunkPath()); err != nil {
		log.Error(err, "Failed to write chunk file")
		os.Exit(1)
	}
	log.Info("wrote chunk file", "path", chunkPath(), "chunks", store.Len())
}
