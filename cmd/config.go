package cmd

import "github.com/spf13/viper"

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for the transports
	viper.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Map environment variables for the completion endpoint
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.url", "OPENROUTER_URL")
	viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")

	// Map environment variables for the embedding endpoint
	viper.BindEnv("ollama.url", "OLLAMA_URL")
	viper.BindEnv("ollama.model", "OLLAMA_EMBED_MODEL")

	// Map environment variables for data locations
	viper.BindEnv("rag.data_dir", "RAG_DATA_DIR")
	viper.BindEnv("rag.docs_dir", "RAG_DOCS_DIR")

	viper.BindEnv("log.development", "LOG_DEVELOPMENT")

	// Completion endpoint defaults match the original deployment
	viper.SetDefault("openrouter.url", "https://openrouter.ai/api/v1")
	viper.SetDefault("openrouter.model", "deepseek/deepseek-chat")
	viper.SetDefault("openrouter.max_tokens", 400)
	viper.SetDefault("openrouter.temperature", 0.8)
	viper.SetDefault("openrouter.timeout", "20s")

	// Embedding defaults
	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "nomic-embed-text")
	viper.SetDefault("ollama.timeout", "60s")
	viper.SetDefault("ollama.batch_size", 32)

	// Data layout and retrieval defaults
	viper.SetDefault("rag.data_dir", "data")
	viper.SetDefault("rag.docs_dir", "docs")
	viper.SetDefault("rag.chunk_file", "chunks.json")
	viper.SetDefault("rag.index_file", "index.bin")
	viper.SetDefault("rag.top_k", 3)
	viper.SetDefault("rag.chunk_size", 400)
	viper.SetDefault("rag.min_chunk_size", 100)

	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "5s")

	viper.SetDefault("log.development", false)
}
