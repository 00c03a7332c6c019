package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IsProd       = false
	LogLevelProd = slog.LevelInfo
	TraceIDKey   = "traceId"

	RateLimitPerSecond      = 5
	BurstRateLimitPerSecond = 10

	// chunking
	MaxChunkChars      = 1800
	ChunkOverlapChars  = 200
	SnippetMaxChars    = 500
	AnswerContextChars = 12000

	// batching
	EmbeddingBatchSize = 96
	UpsertBatchSize    = 150

	// embedding retry
	EmbedMaxAttempts = 4
	EmbedBackoffBase = 400 * time.Millisecond
	EmbedMaxJitter   = 200 * time.Millisecond

	// retrieval clamps
	QueryTopKMax  = 10
	AnswerTopKMax = 8
	DefaultTopK   = 5

	// server timeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	DownloadTimeout = 60 * time.Second

	// http connection pooling
	MaxIdleConns        = 32
	MaxIdleConnsPerHost = 8
	IdleConnTimeout     = 90 * time.Second

	QdrantUseTLS   = false
	QdrantPoolSize = 1

	SlugCacheTTL = 10 * time.Minute

	DefaultEmbeddingModel  = "text-embedding-3-small"
	DefaultIndexDimension  = 1536
	DefaultCompletionModel = "gpt-4o-mini"
)

// Settings is the environment-derived configuration surface. Load never
// fails; required fields are validated per request so that a misconfigured
// process answers with a clean 500 instead of crashing at startup.
type Settings struct {
	BucketBaseURL   string // base URL of the object storage bucket
	PublicBaseURL   string // base URL public document pages are served from
	EmbeddingModel  string
	IndexName       string
	IndexDimension  int
	CompletionModel string
	SharedSecret    string // optional; when set, tool calls must present it

	OpenAIAPIKey string
	GeminiAPIKey string

	MySQLDSN   string
	RedisAddr  string
	QdrantHost string
	QdrantPort int
}

func Load() Settings {
	s := Settings{
		BucketBaseURL:   os.Getenv("BUCKET_BASE_URL"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", DefaultEmbeddingModel),
		IndexName:       getEnv("VECTOR_INDEX_NAME", "doc-chunks"),
		IndexDimension:  getEnvInt("VECTOR_INDEX_DIMENSION", DefaultIndexDimension),
		CompletionModel: getEnv("COMPLETION_MODEL", DefaultCompletionModel),
		SharedSecret:    os.Getenv("TOOL_SHARED_SECRET"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		MySQLDSN:        os.Getenv("MYSQL_DSN"),
		RedisAddr:       getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		QdrantHost:      getEnv("QDRANT_HOST", "127.0.0.1"),
		QdrantPort:      getEnvInt("QDRANT_PORT", 6334),
	}
	return s
}

// MissingForIngest names the settings the ingest pipeline cannot run
// without. An empty result means the configuration is complete.
func (s Settings) MissingForIngest() []string {
	var missing []string
	if s.BucketBaseURL == "" {
		missing = append(missing, "BUCKET_BASE_URL")
	}
	if s.EmbeddingModel == "" {
		missing = append(missing, "EMBEDDING_MODEL")
	}
	if s.IndexName == "" {
		missing = append(missing, "VECTOR_INDEX_NAME")
	}
	if s.IndexDimension <= 0 {
		missing = append(missing, "VECTOR_INDEX_DIMENSION")
	}
	return missing
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
