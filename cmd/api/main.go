// @title           Document Voice API
// @version         1.0
// @description     Ingests uploaded documents into a vector index and answers grounded questions about them.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"docvoice/internal/adapter"
	"docvoice/internal/config"
	"docvoice/internal/data/relstore"
	"docvoice/internal/data/slugcache"
	"docvoice/internal/handlers"
	"docvoice/internal/mcptools"
	"docvoice/internal/middleware"
	"docvoice/internal/rag"
	"docvoice/internal/rag/embedding"
	"docvoice/internal/rag/embedding/googleEmbedding"
	"docvoice/internal/rag/embedding/openaiEmbedding"
	"docvoice/internal/rag/ingest"
	"docvoice/internal/rag/llm"
	"docvoice/internal/rag/llm/gemini"
	"docvoice/internal/rag/llm/openaiLLM"
	"docvoice/internal/rag/vectorindex/qdrantIndex"
	"docvoice/internal/retry"
	"docvoice/internal/server"
	"docvoice/internal/storage"
	"docvoice/pkg/logx"
	"github.com/joho/godotenv"
)

var listenAddr string

func main() {
	_ = godotenv.Load()

	if config.IsProd {
		logx.Init(config.LogLevelProd, true)
	} else {
		logx.Init(slog.LevelDebug, false)
	}
	logger := logx.New("main")

	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	settings := config.Load()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	store, err := relstore.Open(serviceContext, settings.MySQLDSN)
	if err != nil {
		logger.Error("relational store unavailable, shutting down", "error", err.Error())
		return
	}

	index, err := qdrantIndex.New(serviceContext, qdrantIndex.Config{
		Host:       settings.QdrantHost,
		Port:       settings.QdrantPort,
		Collection: settings.IndexName,
		Dimension:  settings.IndexDimension,
	})
	if err != nil {
		logger.Error("vector index unavailable, shutting down", "error", err.Error())
		return
	}

	embedder, err := buildEmbedder(serviceContext, settings)
	if err != nil {
		logger.Error("embedding client failed to initialize, shutting down", "error", err.Error())
		return
	}
	chunkEmbedder := embedding.NewChunkEmbedder(embedder, config.EmbeddingBatchSize, retry.Policy{
		MaxAttempts: config.EmbedMaxAttempts,
		Base:        config.EmbedBackoffBase,
		Jitter:      config.EmbedMaxJitter,
	})

	provider, err := buildProvider(serviceContext, settings)
	if err != nil {
		logger.Error("completion client failed to initialize, shutting down", "error", err.Error())
		return
	}

	// Slug cache degrades to direct store reads when redis is offline.
	redisClient, err := slugcache.Connect(serviceContext, settings.RedisAddr)
	if err != nil {
		logger.Warn("redis offline, slug lookups go straight to the store", "error", err.Error())
		redisClient = nil
	}
	cache := slugcache.New(redisClient, store, config.SlugCacheTTL)

	ragService := rag.NewService(index, embedder, provider, adapter.SlugResolver{Surfaces: cache})

	downloader := storage.NewBucketClient(settings.BucketBaseURL, config.DownloadTimeout)
	orchestrator := ingest.NewOrchestrator(downloader, store, index, chunkEmbedder, cache, settings)

	handler := handlers.New(orchestrator, ragService, cache)
	chain := middleware.NewChain(settings.SharedSecret)
	mcpServer := mcptools.NewServer(ragService)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, handler, chain, mcpServer.HTTPHandler())

	<-stopExecution
	logger.Info("Server stopped")
}

func buildEmbedder(ctx context.Context, settings config.Settings) (embedding.Embedder, error) {
	if strings.HasPrefix(settings.EmbeddingModel, "gemini") {
		return googleEmbedding.New(ctx, settings.EmbeddingModel, settings.GeminiAPIKey, settings.IndexDimension)
	}
	return openaiEmbedding.New(settings.EmbeddingModel, settings.OpenAIAPIKey, settings.IndexDimension), nil
}

func buildProvider(ctx context.Context, settings config.Settings) (llm.Provider, error) {
	if llm.IsGeminiModel(settings.CompletionModel) {
		return gemini.New(ctx, settings.CompletionModel, settings.GeminiAPIKey)
	}
	return openaiLLM.New(settings.CompletionModel, settings.OpenAIAPIKey), nil
}
