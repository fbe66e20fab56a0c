package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/davorm/dailybrief/config"
	"github.com/davorm/dailybrief/notifiers"
	"github.com/davorm/dailybrief/scraper"
	"github.com/davorm/dailybrief/sources"
	"github.com/davorm/dailybrief/summarizer"
)

func main() {
	cfg := config.LoadConfig()

	opts := slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	// One timeout client shared by the search API and the article scraper.
	client := &http.Client{Timeout: 30 * time.Second}

	fetcher := sources.NewGNewsClient(logger, client, cfg.GNewsAPIKey)
	articleScraper := scraper.NewScraper(logger, client)
	articleSummarizer := summarizer.NewOpenAISummarizer(cfg.OpenAIAPIKey)
	mailer := notifiers.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword)

	pipeline := NewPipeline(&cfg, fetcher, articleScraper, articleSummarizer, mailer)
	pipeline.Run(context.Background())
}
