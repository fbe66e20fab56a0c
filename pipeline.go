package main

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/davorm/dailybrief/config"
	"github.com/davorm/dailybrief/models"
	"github.com/davorm/dailybrief/summarizer"
)

// minArticleChars is the smallest body worth summarizing. Shorter extractions
// are almost always paywalls or error pages, and skipping them avoids a
// pointless model call.
const minArticleChars = 250

type ArticleFetcher interface {
	Fetch(ctx context.Context, topic string, maxArticles int) ([]models.Article, error)
}

type ArticleScraper interface {
	Extract(ctx context.Context, url string) (string, error)
}

type DigestMailer interface {
	DigestEmail(to string, entries []models.DigestEntry) (models.Email, error)
	Send(email models.Email) error
}

type Pipeline struct {
	cfg        *config.AppConfig
	fetcher    ArticleFetcher
	scraper    ArticleScraper
	summarizer summarizer.Summarizer
	mailer     DigestMailer
}

func NewPipeline(cfg *config.AppConfig, fetcher ArticleFetcher, scraper ArticleScraper, summarizer summarizer.Summarizer, mailer DigestMailer) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		scraper:    scraper,
		summarizer: summarizer,
		mailer:     mailer,
	}
}

// Run executes one fetch -> summarize -> send pass. Every failure is local:
// a dead search API means an empty run, a bad article means a skipped entry,
// a failed send means a logged error. Run never panics and never signals
// failure to the caller.
func (p *Pipeline) Run(ctx context.Context) {
	slog.Info("fetching articles", "topic", p.cfg.Topic, "max", p.cfg.MaxArticles)

	articles, err := p.fetcher.Fetch(ctx, p.cfg.Topic, p.cfg.MaxArticles)
	if err != nil {
		slog.Error("fetch news:", "error", err)
		articles = nil
	}
	if len(articles) == 0 {
		slog.Info("no articles found, nothing to send")
		return
	}

	slog.Info("starting summarization", "articles", len(articles))

	entries := make([]models.DigestEntry, 0, len(articles))
	for _, article := range articles {
		slog.Info("summarizing article", "title", article.Title)

		summary, err := p.summarizeArticle(ctx, article.URL)
		if err != nil {
			slog.Info("skipping article", "url", article.URL, "reason", err.Error())
			continue
		}

		entries = append(entries, models.DigestEntry{
			Title:   article.Title,
			Summary: summary,
			URL:     article.URL,
		})
	}

	if len(entries) == 0 {
		slog.Info("no summaries generated, nothing to send")
		return
	}

	slog.Info("generated summaries", "count", len(entries))

	if err := p.sendDigest(entries); err != nil {
		slog.Error("send digest:", "error", err)
		return
	}

	slog.Info("newsletter process complete")
}

func (p *Pipeline) summarizeArticle(ctx context.Context, url string) (string, error) {
	text, err := p.scraper.Extract(ctx, url)
	if err != nil {
		return "", errors.Wrap(err, "extract article")
	}

	if len(text) < minArticleChars {
		return "", errors.Errorf("article text too short (%d chars)", len(text))
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return "", errors.Wrap(err, "summarize article")
	}

	return summary, nil
}

func (p *Pipeline) sendDigest(entries []models.DigestEntry) error {
	email, err := p.mailer.DigestEmail(p.cfg.Recipient, entries)
	if err != nil {
		return errors.Wrap(err, "render digest email")
	}

	if p.cfg.DryRun {
		slog.Info("dry run, skipping delivery", "subject", email.Subject, "stories", len(entries))
		return nil
	}

	if err := p.mailer.Send(email); err != nil {
		return errors.Wrap(err, "send digest email")
	}

	return nil
}
