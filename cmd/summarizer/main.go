package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/n3xa/n3xa/internal/adapter/ai"
	httpadapter "github.com/n3xa/n3xa/internal/adapter/http"
	"github.com/n3xa/n3xa/internal/config"
	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/logger"
	"github.com/n3xa/n3xa/internal/usecase"
)

var Version = "development"

func main() {
	version := pflag.Bool("version", false, "Show version information")
	pflag.Parse()

	if *version {
		fmt.Printf("N3XA Summarizer %s\n", Version)
		os.Exit(0)
	}

	cfg := config.LoadSummarizer()
	log := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "n3xa-summarizer",
	})
	ctx := context.Background()

	// Without a key every summary comes from the template
	var llm ports.CompletionProvider
	if cfg.OpenAIKey != "" {
		llm = ai.NewOpenAIAdapter(ai.OpenAIConfig{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.LLMTimeout,
		})
	} else {
		log.Warn(ctx, "OPENAI_API_KEY not set, using template summaries", nil)
	}

	summaryUseCase := usecase.NewSummaryUseCase(llm, log)
	log.Info(ctx, "Starting N3XA summarizer", map[string]interface{}{
		"version":  Version,
		"provider": summaryUseCase.Provider(),
		"addr":     cfg.Addr(),
	})

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Addr:         cfg.Addr(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}, httpadapter.NewSummaryRouter(httpadapter.NewSummaryHandler(summaryUseCase), log), log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error(ctx, "Failed to start server", err, nil)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Error during server shutdown", err, nil)
	}
	log.Info(ctx, "Summarizer stopped", nil)
}
