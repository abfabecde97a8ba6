package cmd

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/viper"

	"ragbot/src/core/assistant"
	"ragbot/src/core/conversation"
	"ragbot/src/core/corpus"
	"ragbot/src/core/retrieval"
	"ragbot/src/core/vectorindex"
	"ragbot/src/infrastructure/integrations/ollama"
	"ragbot/src/infrastructure/integrations/openrouter"
	"ragbot/src/infrastructure/log"
)

func chunkPath() string {
	return filepath.Join(viper.GetString("rag.data_dir"), viper.GetString("rag.chunk_file"))
}

func indexPath() string {
	return filepath.Join(viper.GetString("rag.data_dir"), viper.GetString("rag.index_file"))
}

func newEmbedder() (*ollama.Embedder, error) {
	return ollama.NewEmbedder(
		viper.GetString("ollama.url"),
		viper.GetString("ollama.model"),
		&http.Client{Timeout: viper.GetDuration("ollama.timeout")},
	)
}

// newRetriever loads the corpus and index eagerly. Missing or
// mismatched data files are a startup failure: the process must not
// serve traffic over a broken retrieval state.
func newRetriever() (*retrieval.Service, error) {
	store, err := corpus.Load(chunkPath())
	if err != nil {
		return nil, fmt.Errorf("corpus load: %w", err)
	}
	index, err := vectorindex.Load(indexPath())
	if err != nil {
		return nil, fmt.Errorf("index load: %w", err)
	}
	embedder, err := newEmbedder()
	if err != nil {
		return nil, err
	}

	svc, err := retrieval.NewService(embedder, index, store)
	if err != nil {
		return nil, err
	}
	log.Info("retrieval ready",
		"chunks", store.Len(),
		"dimension", index.Dimension(),
		"embed_model", embedder.Model())
	return svc, nil
}

func newAssistant(retriever assistant.Retriever) (*assistant.Service, error) {
	completer, err := openrouter.NewClient(openrouter.Config{
		BaseURL:     viper.GetString("openrouter.url"),
		APIKey:      viper.GetString("openrouter.api_key"),
		Model:       viper.GetString("openrouter.model"),
		MaxTokens:   viper.GetInt("openrouter.max_tokens"),
		Temperature: float32(viper.GetFloat64("openrouter.temperature")),
		Timeout:     viper.GetDuration("openrouter.timeout"),
	})
	if err != nil {
		return nil, err
	}

	return assistant.NewService(retriever, conversation.NewStore(), completer, assistant.Config{
		TopK: viper.GetInt("rag.top_k"),
	}), nil
}
